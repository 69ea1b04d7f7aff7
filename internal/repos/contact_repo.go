package repos

import (
	"chemcatalog/internal/domain"
)

const contactCols = `id, name, email, phone, message, request_call_back, status, created_at`

func (s *SQLStore) GetContactRequest(id int64) (*domain.ContactRequest, error) {
	return getOne[domain.ContactRequest](s.db, `SELECT `+contactCols+` FROM contact_requests WHERE id = ?`, id)
}

// ListContactRequests returns the inbox newest first.
func (s *SQLStore) ListContactRequests() ([]domain.ContactRequest, error) {
	out := []domain.ContactRequest{}
	err := s.db.Select(&out, `SELECT `+contactCols+` FROM contact_requests ORDER BY created_at DESC, id DESC`)
	return out, err
}

func (s *SQLStore) CreateContactRequest(in domain.ContactInput) (*domain.ContactRequest, error) {
	res, err := s.db.Exec(`INSERT INTO contact_requests(name, email, phone, message, request_call_back, status, created_at)
                           VALUES(?,?,?,?,?,?,?)`,
		in.Name, in.Email, in.Phone, in.Message, boolInt(in.RequestCallBack), domain.ContactStatusNew, stamp(s.now()))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetContactRequest(id)
}

// UpdateContactStatus accepts any transition; there is no status state machine.
func (s *SQLStore) UpdateContactStatus(id int64, status string) (*domain.ContactRequest, error) {
	res, err := s.db.Exec(`UPDATE contact_requests SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.GetContactRequest(id)
}

func (s *SQLStore) DeleteContactRequest(id int64) (bool, error) {
	return deleted(s.db.Exec(`DELETE FROM contact_requests WHERE id = ?`, id))
}
