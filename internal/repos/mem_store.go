package repos

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"time"

	"chemcatalog/internal/domain"
	"chemcatalog/internal/password"
)

// MemStore keeps every entity in maps owned by the store and guarded by one
// mutex. With a snapshot path, each mutation rewrites the whole state to
// disk before returning.
type MemStore struct {
	mu   sync.Mutex
	now  func() time.Time
	path string

	users         map[int64]domain.User
	sessions      map[string]domain.Session
	categories    map[int64]domain.Category
	products      map[int64]domain.Product
	productImages map[int64]domain.ProductImage
	heroImages    map[int64]domain.HeroImage
	contacts      map[int64]domain.ContactRequest
	settings      map[string]string
}

var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty store, or one loaded from snapshotPath when
// that file exists. An empty path disables persistence.
func NewMemStore(snapshotPath string) (*MemStore, error) {
	s := &MemStore{
		now:           time.Now,
		path:          snapshotPath,
		users:         map[int64]domain.User{},
		sessions:      map[string]domain.Session{},
		categories:    map[int64]domain.Category{},
		products:      map[int64]domain.Product{},
		productImages: map[int64]domain.ProductImage{},
		heroImages:    map[int64]domain.HeroImage{},
		contacts:      map[int64]domain.ContactRequest{},
		settings:      map[string]string{},
	}
	if snapshotPath != "" {
		if err := s.load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *MemStore) Close() error { return nil }

func nextID[T any](m map[int64]T) int64 {
	var max int64
	for id := range m {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}

func cloneStr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneID(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ---------- Users ----------

func (s *MemStore) GetUser(id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) userByName(username string) (domain.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *MemStore) GetUserByUsername(username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.userByName(username)
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) ListUsers() ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedByID(s.users, func(u domain.User) int64 { return u.ID }), nil
}

func (s *MemStore) CreateUser(in domain.NewUser) (*domain.User, error) {
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.userByName(in.Username); ok {
		return nil, ErrDuplicate
	}
	u := domain.User{ID: nextID(s.users), Username: in.Username, Hash: hash, Role: in.Role, CreatedAt: stamp(s.now())}
	s.users[u.ID] = u
	return &u, s.persist()
}

func (s *MemStore) UpdateUser(id int64, p domain.UserPatch) (*domain.User, error) {
	var hash string
	if p.Password != nil {
		h, err := password.Hash(*p.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Password != nil {
		u.Hash = hash
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	s.users[id] = u
	return &u, s.persist()
}

func (s *MemStore) DeleteUser(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, s.persist()
}

func (s *MemStore) ValidateUser(username, plain string) (*domain.User, error) {
	u, err := s.GetUserByUsername(username)
	if err != nil {
		password.CompareDummy(plain)
		return nil, nil
	}
	if !password.Compare(plain, u.Hash) {
		return nil, nil
	}
	return u, nil
}

// ---------- Sessions (volatile, never snapshotted) ----------

func (s *MemStore) CreateSession(sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *MemStore) GetSession(token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemStore) DeleteSession(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemStore) DeleteUserSessions(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for tok, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, tok)
		}
	}
	return nil
}

// ---------- Categories ----------

func copyCategory(c domain.Category) *domain.Category {
	c.Description = cloneStr(c.Description)
	c.Image = cloneStr(c.Image)
	return &c
}

func (s *MemStore) GetCategory(id int64) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCategory(c), nil
}

func (s *MemStore) ListCategories() ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := sortedByID(s.categories, func(c domain.Category) int64 { return c.ID })
	for i := range out {
		out[i] = *copyCategory(out[i])
	}
	return out, nil
}

func (s *MemStore) CreateCategory(in domain.CategoryInput) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.Category{
		ID: nextID(s.categories), Name: in.Name,
		Description: cloneStr(in.Description), Image: cloneStr(in.Image),
		CreatedAt: stamp(s.now()),
	}
	s.categories[c.ID] = c
	return copyCategory(c), s.persist()
}

func (s *MemStore) UpdateCategory(id int64, p domain.CategoryPatch) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyCategoryPatch(&c, domain.CategoryPatch{Name: p.Name, Description: cloneStr(p.Description), Image: cloneStr(p.Image)})
	s.categories[id] = c
	return copyCategory(c), s.persist()
}

func (s *MemStore) DeleteCategory(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, s.persist()
}

// ---------- Products ----------

func copyProduct(p domain.Product) *domain.Product {
	p.CategoryID = cloneID(p.CategoryID)
	return &p
}

func (s *MemStore) GetProduct(id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProduct(p), nil
}

func (s *MemStore) ListProducts() ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := sortedByID(s.products, func(p domain.Product) int64 { return p.ID })
	for i := range out {
		out[i] = *copyProduct(out[i])
	}
	return out, nil
}

func (s *MemStore) ListProductsByCategory(categoryID int64) ([]domain.Product, error) {
	all, _ := s.ListProducts()
	out := []domain.Product{}
	for _, p := range all {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemStore) CreateProduct(in domain.ProductInput) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.Product{
		ID: nextID(s.products), Name: in.Name, Description: in.Description,
		CategoryID: cloneID(in.CategoryID), CreatedAt: stamp(s.now()),
	}
	s.products[p.ID] = p
	return copyProduct(p), s.persist()
}

func (s *MemStore) UpdateProduct(id int64, patch domain.ProductPatch) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyProductPatch(&p, patch)
	s.products[id] = p
	return copyProduct(p), s.persist()
}

func (s *MemStore) DeleteProduct(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return false, nil
	}
	delete(s.products, id)
	return true, s.persist()
}

// ---------- Product images ----------

func byOrderThenID(aOrder, bOrder int, aID, bID int64) int {
	if c := cmp.Compare(aOrder, bOrder); c != 0 {
		return c
	}
	return cmp.Compare(aID, bID)
}

func (s *MemStore) GetProductImage(id int64) (*domain.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.productImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (s *MemStore) ListProductImages(productID int64) ([]domain.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.ProductImage{}
	for _, img := range s.productImages {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	slices.SortFunc(out, func(a, b domain.ProductImage) int { return byOrderThenID(a.Order, b.Order, a.ID, b.ID) })
	return out, nil
}

func (s *MemStore) clearMain(productID, except int64) {
	for id, img := range s.productImages {
		if img.ProductID == productID && id != except && img.IsMain {
			img.IsMain = false
			s.productImages[id] = img
		}
	}
}

func (s *MemStore) CreateProductImage(productID int64, in domain.ProductImageInput) (*domain.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := domain.ProductImage{ID: nextID(s.productImages), ProductID: productID, ImageURL: in.ImageURL, IsMain: in.IsMain, Order: in.Order}
	if img.IsMain {
		s.clearMain(productID, img.ID)
	}
	s.productImages[img.ID] = img
	return &img, s.persist()
}

func (s *MemStore) SetMainProductImage(id int64) (*domain.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.productImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.clearMain(img.ProductID, id)
	img.IsMain = true
	s.productImages[id] = img
	return &img, s.persist()
}

func (s *MemStore) DeleteProductImage(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.productImages[id]; !ok {
		return false, nil
	}
	delete(s.productImages, id)
	return true, s.persist()
}

// ---------- Hero images ----------

func copyHero(h domain.HeroImage) *domain.HeroImage {
	h.Title = cloneStr(h.Title)
	h.Subtitle = cloneStr(h.Subtitle)
	h.ButtonText = cloneStr(h.ButtonText)
	h.ButtonLink = cloneStr(h.ButtonLink)
	return &h
}

func (s *MemStore) GetHeroImage(id int64) (*domain.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.heroImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyHero(h), nil
}

func (s *MemStore) listHero(activeOnly bool) []domain.HeroImage {
	out := []domain.HeroImage{}
	for _, h := range s.heroImages {
		if activeOnly && !h.IsActive {
			continue
		}
		out = append(out, *copyHero(h))
	}
	slices.SortFunc(out, func(a, b domain.HeroImage) int { return byOrderThenID(a.Order, b.Order, a.ID, b.ID) })
	return out
}

func (s *MemStore) ListHeroImages() ([]domain.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listHero(false), nil
}

func (s *MemStore) ListActiveHeroImages() ([]domain.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listHero(true), nil
}

func (s *MemStore) CreateHeroImage(in domain.HeroImageInput) (*domain.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := domain.HeroImage{
		ID: nextID(s.heroImages), ImageURL: in.ImageURL,
		Title: cloneStr(in.Title), Subtitle: cloneStr(in.Subtitle),
		ButtonText: cloneStr(in.ButtonText), ButtonLink: cloneStr(in.ButtonLink),
		Order: in.Order, IsActive: in.IsActive == nil || *in.IsActive,
	}
	s.heroImages[h.ID] = h
	return copyHero(h), s.persist()
}

func (s *MemStore) UpdateHeroImage(id int64, p domain.HeroImagePatch) (*domain.HeroImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.heroImages[id]
	if !ok {
		return nil, ErrNotFound
	}
	applyHeroPatch(&h, p)
	h = *copyHero(h)
	s.heroImages[id] = h
	return copyHero(h), s.persist()
}

func (s *MemStore) DeleteHeroImage(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.heroImages[id]; !ok {
		return false, nil
	}
	delete(s.heroImages, id)
	return true, s.persist()
}

// ---------- Contact requests ----------

func copyContact(c domain.ContactRequest) *domain.ContactRequest {
	c.Message = cloneStr(c.Message)
	return &c
}

func (s *MemStore) GetContactRequest(id int64) (*domain.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyContact(c), nil
}

func (s *MemStore) ListContactRequests() ([]domain.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ContactRequest, 0, len(s.contacts))
	for _, c := range s.contacts {
		out = append(out, *copyContact(c))
	}
	slices.SortFunc(out, func(a, b domain.ContactRequest) int {
		if c := strings.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (s *MemStore) CreateContactRequest(in domain.ContactInput) (*domain.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := domain.ContactRequest{
		ID: nextID(s.contacts), Name: in.Name, Email: in.Email, Phone: in.Phone,
		Message: cloneStr(in.Message), RequestCallBack: in.RequestCallBack,
		Status: domain.ContactStatusNew, CreatedAt: stamp(s.now()),
	}
	s.contacts[c.ID] = c
	return copyContact(c), s.persist()
}

func (s *MemStore) UpdateContactStatus(id int64, status string) (*domain.ContactRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contacts[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Status = status
	s.contacts[id] = c
	return copyContact(c), s.persist()
}

func (s *MemStore) DeleteContactRequest(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[id]; !ok {
		return false, nil
	}
	delete(s.contacts, id)
	return true, s.persist()
}

// ---------- Settings ----------

func (s *MemStore) GetSetting(key string) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &domain.Setting{Key: key, Value: v}, nil
}

func (s *MemStore) ListSettings() ([]domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Setting, 0, len(s.settings))
	for k, v := range s.settings {
		out = append(out, domain.Setting{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b domain.Setting) int { return strings.Compare(a.Key, b.Key) })
	return out, nil
}

func (s *MemStore) UpsertSetting(key, value string) (*domain.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return &domain.Setting{Key: key, Value: value}, s.persist()
}
