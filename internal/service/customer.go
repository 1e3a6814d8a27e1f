package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/bookshop/internal/access"
	"github.com/Skotchmaster/bookshop/internal/logging"
	"github.com/Skotchmaster/bookshop/internal/models"
	"github.com/Skotchmaster/bookshop/internal/repo"
)

type CustomerService struct {
	Repo *repo.GormRepo
}

func (s *CustomerService) ListCustomers(ctx context.Context, caller access.Caller) ([]models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "customers.list")

	if err := authorize(access.AdminOnly(caller)); err != nil {
		l.Warn("list_customers_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	customers, err := s.Repo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// GetCustomer checks the policy before looking the customer up, so a caller
// without rights cannot probe which ids exist.
func (s *CustomerService) GetCustomer(ctx context.Context, caller access.Caller, id uint) (*models.Customer, error) {
	l := logging.FromContext(ctx).With("svc", "customers.get", "customer_id", id)

	if err := authorize(access.AdminOrSelf(caller, id)); err != nil {
		l.Warn("get_customer_denied", "status", 401, "caller_id", caller.ID)
		return nil, err
	}

	customer, err := s.Repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, storeErr(fmt.Sprintf("customer %d", id), err)
	}
	return customer, nil
}
