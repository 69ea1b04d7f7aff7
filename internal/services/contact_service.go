package services

import (
	"strings"

	"chemcatalog/internal/domain"
	"chemcatalog/internal/repos"
	"chemcatalog/internal/validate"
)

type ContactService struct {
	Store repos.ContactStore
}

func NewContactService(s repos.ContactStore) *ContactService {
	return &ContactService{Store: s}
}

// Submit records a public contact request with status "new".
func (s *ContactService) Submit(in domain.ContactInput) (*domain.ContactRequest, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Message != nil {
		m := strings.TrimSpace(*in.Message)
		in.Message = &m
		if m == "" {
			in.Message = nil
		}
	}
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	r, err := s.Store.CreateContactRequest(in)
	return r, storeErr(err, "Contact request")
}

func (s *ContactService) List() ([]domain.ContactRequest, error) {
	rs, err := s.Store.ListContactRequests()
	return rs, storeErr(err, "Contact request")
}

func (s *ContactService) Get(id int64) (*domain.ContactRequest, error) {
	r, err := s.Store.GetContactRequest(id)
	return r, storeErr(err, "Contact request")
}

func (s *ContactService) SetStatus(id int64, in domain.ContactStatusInput) (*domain.ContactRequest, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	r, err := s.Store.UpdateContactStatus(id, in.Status)
	return r, storeErr(err, "Contact request")
}

func (s *ContactService) Delete(id int64) error {
	ok, err := s.Store.DeleteContactRequest(id)
	return deleteResult(ok, err, "Contact request")
}
