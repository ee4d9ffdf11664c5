package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ibitrepair/workshop/internal/models"
	"github.com/ibitrepair/workshop/internal/repo"
)

func newCustomerService(t *testing.T) *CustomerService {
	t.Helper()
	return &CustomerService{Repo: repo.New(newTestDB(t))}
}

func TestCustomerLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t)

	c := &models.Customer{Name: "Somchai Mining", Phone: "0812345678", Email: "somchai@example.com"}
	require.NoError(t, svc.Create(ctx, c))
	require.NotZero(t, c.ID)

	require.ErrorIs(t, svc.Create(ctx, &models.Customer{Phone: "0800000000"}), ErrValidation)
	require.ErrorIs(t, svc.Create(ctx, &models.Customer{Name: "No Phone"}), ErrValidation)

	updated, err := svc.Update(ctx, c.ID, &models.Customer{
		Name: "Somchai Mining Co.", Phone: "0812345678", Address: "Bangkok", Notes: "bulk customer",
	})
	require.NoError(t, err)
	require.Equal(t, "Somchai Mining Co.", updated.Name)
	require.Equal(t, "Bangkok", updated.Address)

	require.NoError(t, svc.Delete(ctx, c.ID))
	_, err = svc.Get(ctx, c.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCustomerSearch(t *testing.T) {
	ctx := context.Background()
	svc := newCustomerService(t)

	for _, c := range []*models.Customer{
		{Name: "Somchai Mining", Phone: "0812345678"},
		{Name: "Pranee Farm", Phone: "0898765432"},
		{Name: "Somsak Hashing", Phone: "0811111111"},
	} {
		require.NoError(t, svc.Create(ctx, c))
	}

	total, items, err := svc.List(ctx, "Som", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)

	// phone fragments match too
	total, _, err = svc.List(ctx, "0898", 0, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	total, _, err = svc.List(ctx, "", 0, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
}
