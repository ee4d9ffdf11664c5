package service

import (
	"context"
	"fmt"

	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) Get(ctx context.Context, id uint) (*models.Customer, error) {
	return s.Repo.GetCustomer(ctx, id)
}

func (s *CustomerService) List(ctx context.Context, q string, offset, limit int) (int64, []models.Customer, error) {
	return s.Repo.ListCustomers(ctx, q, offset, limit)
}

func (s *CustomerService) Create(ctx context.Context, c *models.Customer) error {
	if c.Name == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if c.Phone == "" {
		return fmt.Errorf("%w: customer phone is required", ErrValidation)
	}
	return s.Repo.CreateCustomer(ctx, c)
}

func (s *CustomerService) Update(ctx context.Context, id uint, in *models.Customer) (*models.Customer, error) {
	cur, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if in.Phone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrValidation)
	}

	cur.Name = in.Name
	cur.Phone = in.Phone
	cur.Email = in.Email
	cur.Address = in.Address
	cur.LineID = in.LineID
	cur.Notes = in.Notes

	if err := s.Repo.SaveCustomer(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.Repo.DeleteCustomer(ctx, id)
}
