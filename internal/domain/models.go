package domain

const (
	ContactStatusNew        = "new"
	ContactStatusProcessing = "processing"
	ContactStatusCompleted  = "completed"
	ContactStatusArchived   = "archived"
)

type Category struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Image       *string `db:"image" json:"image"`
	CreatedAt   string  `db:"created_at" json:"createdAt"`
}

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Image       *string `json:"image" validate:"omitnil,max=500"`
}

type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Image       *string `json:"image" validate:"omitnil,max=500"`
}

// Product.CategoryID is a soft reference; nothing keeps it pointing at a live category.
type Product struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CategoryID  *int64 `db:"category_id" json:"categoryId"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

type ProductDetail struct {
	Product
	Images []ProductImage `json:"images"`
}

type ProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	CategoryID  *int64 `json:"categoryId" validate:"omitnil,gt=0"`
}

type ProductPatch struct {
	Name        *string         `json:"name" validate:"omitnil,min=1,max=200"`
	Description *string         `json:"description" validate:"omitnil,min=1,max=5000"`
	CategoryID  Optional[int64] `json:"categoryId" validate:"-"`
}

type ProductImage struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"productId"`
	ImageURL  string `db:"image_url" json:"imageUrl"`
	IsMain    bool   `db:"is_main" json:"isMain"`
	Order     int    `db:"sort_order" json:"order"`
}

type ProductImageInput struct {
	ImageURL string `json:"imageUrl" validate:"required,imageref"`
	IsMain   bool   `json:"isMain"`
	Order    int    `json:"order" validate:"min=0"`
}

type HeroImage struct {
	ID         int64   `db:"id" json:"id"`
	ImageURL   string  `db:"image_url" json:"imageUrl"`
	Title      *string `db:"title" json:"title"`
	Subtitle   *string `db:"subtitle" json:"subtitle"`
	ButtonText *string `db:"button_text" json:"buttonText"`
	ButtonLink *string `db:"button_link" json:"buttonLink"`
	Order      int     `db:"sort_order" json:"order"`
	IsActive   bool    `db:"is_active" json:"isActive"`
}

type HeroImageInput struct {
	ImageURL   string  `json:"imageUrl" validate:"required,imageref"`
	Title      *string `json:"title" validate:"omitnil,max=200"`
	Subtitle   *string `json:"subtitle" validate:"omitnil,max=500"`
	ButtonText *string `json:"buttonText" validate:"omitnil,max=100"`
	ButtonLink *string `json:"buttonLink" validate:"omitnil,max=500"`
	Order      int     `json:"order" validate:"min=0"`
	IsActive   *bool   `json:"isActive"`
}

type HeroImagePatch struct {
	ImageURL   *string `json:"imageUrl" validate:"omitnil,imageref"`
	Title      *string `json:"title" validate:"omitnil,max=200"`
	Subtitle   *string `json:"subtitle" validate:"omitnil,max=500"`
	ButtonText *string `json:"buttonText" validate:"omitnil,max=100"`
	ButtonLink *string `json:"buttonLink" validate:"omitnil,max=500"`
	Order      *int    `json:"order" validate:"omitnil,min=0"`
	IsActive   *bool   `json:"isActive"`
}

type ContactRequest struct {
	ID              int64   `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Email           string  `db:"email" json:"email"`
	Phone           string  `db:"phone" json:"phone"`
	Message         *string `db:"message" json:"message"`
	RequestCallBack bool    `db:"request_call_back" json:"requestCallBack"`
	Status          string  `db:"status" json:"status"`
	CreatedAt       string  `db:"created_at" json:"createdAt"`
}

type ContactInput struct {
	Name            string  `json:"name" validate:"required,max=100"`
	Email           string  `json:"email" validate:"required,email,max=254"`
	Phone           string  `json:"phone" validate:"required,phone"`
	Message         *string `json:"message" validate:"omitnil,max=2000"`
	RequestCallBack bool    `json:"requestCallBack"`
}

type ContactStatusInput struct {
	Status string `json:"status" validate:"required,oneof=new processing completed archived"`
}

type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

type SettingInput struct {
	Value string `json:"value" validate:"max=10000"`
}
