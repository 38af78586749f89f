// Package seed loads demo staff, customers and orders for local
// development and demos. Seeding is idempotent: existing staff and
// customers are reused by email, and demo orders are only created when
// the orders table is empty.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/emilybakes/bakery/internal/adapter/logger"
	"github.com/emilybakes/bakery/internal/domain"
	"github.com/emilybakes/bakery/internal/interfaces"
	"go.uber.org/zap"
)

const demoPassword = "DemoPass123!"

type Seeder struct {
	orders    interfaces.OrderRepository
	customers interfaces.CustomerRepository
	staff     interfaces.StaffRepository
}

func New(orders interfaces.OrderRepository, customers interfaces.CustomerRepository, staff interfaces.StaffRepository) *Seeder {
	return &Seeder{orders: orders, customers: customers, staff: staff}
}

func (s *Seeder) Run(ctx context.Context) error {
	log := logger.L()

	staffIDs, err := s.seedStaff(ctx)
	if err != nil {
		return err
	}

	customerIDs, err := s.seedCustomers(ctx)
	if err != nil {
		return err
	}

	if err := s.seedOrders(ctx, staffIDs, customerIDs); err != nil {
		return err
	}

	log.Info("database seeded",
		zap.Int("staff", len(staffIDs)),
		zap.Int("customers", len(customerIDs)),
		zap.String("demo_password", demoPassword),
	)
	return nil
}

func (s *Seeder) seedStaff(ctx context.Context) (map[domain.Role]int, error) {
	accounts := []struct {
		email string
		name  string
		role  domain.Role
	}{
		{"emily@emilybakes.com", "Emily Baker", domain.RoleOwner},
		{"manager@emilybakes.com", "James Wilson", domain.RoleManager},
		{"sales@emilybakes.com", "Sarah Martinez", domain.RoleSales},
		{"baker@emilybakes.com", "Tom Anderson", domain.RoleBaker},
		{"decorator@emilybakes.com", "Lisa Chen", domain.RoleDecorator},
		{"accountant@emilybakes.com", "Dan Roberts", domain.RoleAccountant},
	}

	ids := make(map[domain.Role]int, len(accounts))
	for _, a := range accounts {
		if existing, err := s.staff.FindByEmail(ctx, a.email); err == nil {
			ids[a.role] = existing.ID
			continue
		}

		account, err := domain.NewStaff(a.email, demoPassword, a.name, a.role)
		if err != nil {
			return nil, fmt.Errorf("failed to build staff account %s: %w", a.email, err)
		}
		if err := s.staff.Create(ctx, account); err != nil {
			return nil, fmt.Errorf("failed to create staff account %s: %w", a.email, err)
		}
		ids[a.role] = account.ID
	}

	return ids, nil
}

func (s *Seeder) seedCustomers(ctx context.Context) ([]int, error) {
	people := []struct {
		name        string
		email       string
		phone       string
		totalOrders int
		vip         bool
	}{
		{"Jennifer Lopez", "jennifer.lopez@example.com", "(555) 123-4567", 3, true},
		{"Michael Chen", "michael.chen@example.com", "(555) 234-5678", 2, false},
		{"Sarah Williams", "sarah.williams@example.com", "(555) 345-6789", 1, false},
		{"Corporate Events Inc", "events@corporate.com", "(555) 456-7890", 5, true},
		{"David Martinez", "david.m@example.com", "(555) 567-8901", 1, false},
	}

	ids := make([]int, 0, len(people))
	for _, p := range people {
		if existing, err := s.customers.FindByEmail(ctx, p.email); err == nil {
			ids = append(ids, existing.ID)
			continue
		}

		customer, err := domain.NewCustomer(p.name, p.email, p.phone)
		if err != nil {
			return nil, fmt.Errorf("failed to build customer %s: %w", p.email, err)
		}
		customer.TotalOrders = p.totalOrders
		customer.VIP = p.vip
		if err := s.customers.Create(ctx, customer); err != nil {
			return nil, fmt.Errorf("failed to create customer %s: %w", p.email, err)
		}
		ids = append(ids, customer.ID)
	}

	return ids, nil
}

type demoOrder struct {
	customerIdx   int
	occasion      string
	design        string
	servings      int
	totalAmount   int64
	depositAmount int64
	status        domain.Status
	priority      domain.Priority
	eventDate     string
	layers        []domain.Layer
	assignBaker   bool
	assignDec     bool
	paid          bool
}

func (s *Seeder) seedOrders(ctx context.Context, staffIDs map[domain.Role]int, customerIDs []int) error {
	existing, err := s.orders.List(ctx, interfaces.OrderFilter{})
	if err != nil {
		return fmt.Errorf("failed to check for existing orders: %w", err)
	}
	if len(existing) > 0 {
		logger.L().Info("orders already present, skipping demo orders",
			zap.Int("count", len(existing)))
		return nil
	}

	demos := []demoOrder{
		{
			customerIdx: 0, occasion: "wedding", design: "elegant-tiered", servings: 150,
			totalAmount: 45000, depositAmount: 22500,
			status: domain.StatusDecorating, priority: domain.PriorityHigh, eventDate: "2026-11-20",
			layers: []domain.Layer{
				{Flavor: "vanilla", Fillings: []string{"raspberry", "buttercream"}, Notes: "Extra raspberry"},
				{Flavor: "chocolate", Fillings: []string{"ganache"}},
			},
			assignBaker: true, assignDec: true,
		},
		{
			customerIdx: 1, occasion: "birthday", design: "modern-geometric", servings: 50,
			totalAmount: 12000, depositAmount: 6000,
			status: domain.StatusBaking, priority: domain.PriorityMedium, eventDate: "2026-11-18",
			layers:      []domain.Layer{{Flavor: "red-velvet", Fillings: []string{"cream-cheese"}}},
			assignBaker: true,
		},
		{
			customerIdx: 2, occasion: "anniversary", design: "floral-romance", servings: 30,
			totalAmount: 8500, depositAmount: 4250,
			status: domain.StatusPending, priority: domain.PriorityMedium, eventDate: "2026-11-22",
			layers: []domain.Layer{{Flavor: "lemon", Fillings: []string{"lemon-curd", "buttercream"}, Notes: "Light and fresh"}},
		},
		{
			customerIdx: 3, occasion: "corporate", design: "minimalist-chic", servings: 200,
			totalAmount: 55000, depositAmount: 27500,
			status: domain.StatusReady, priority: domain.PriorityHigh, eventDate: "2026-11-16",
			layers: []domain.Layer{
				{Flavor: "vanilla", Fillings: []string{"buttercream"}, Notes: "Company logo on top"},
				{Flavor: "chocolate", Fillings: []string{"mocha"}},
			},
			assignBaker: true, assignDec: true, paid: true,
		},
		{
			customerIdx: 4, occasion: "graduation", design: "colorful-celebration", servings: 40,
			totalAmount: 9500, depositAmount: 4750,
			status: domain.StatusCompleted, priority: domain.PriorityLow, eventDate: "2026-11-10",
			layers:      []domain.Layer{{Flavor: "funfetti", Fillings: []string{"vanilla", "sprinkles"}, Notes: "Extra colorful!"}},
			assignBaker: true, assignDec: true, paid: true,
		},
	}

	for _, d := range demos {
		eventDate, err := time.Parse("2006-01-02", d.eventDate)
		if err != nil {
			return err
		}

		order, err := domain.NewOrder(customerIDs[d.customerIdx], "custom", d.occasion, d.design,
			d.servings, d.layers, d.totalAmount, d.depositAmount, d.priority, &eventDate)
		if err != nil {
			return fmt.Errorf("failed to build demo order: %w", err)
		}

		if err := order.ChangeStatus(d.status); err != nil {
			return err
		}

		var baker, decorator *int
		if d.assignBaker {
			id := staffIDs[domain.RoleBaker]
			baker = &id
		}
		if d.assignDec {
			id := staffIDs[domain.RoleDecorator]
			decorator = &id
		}
		order.Assign(baker, decorator)

		if err := s.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create demo order: %w", err)
		}

		// Record payments through the repository so the payments table
		// stays consistent with the amounts on the order.
		amount := d.depositAmount
		if d.paid {
			amount = d.totalAmount
		}
		if amount > 0 {
			order.ApplyPayment(amount)
			if err := s.orders.RecordPayment(ctx, order, amount, "card"); err != nil {
				return fmt.Errorf("failed to record demo payment: %w", err)
			}
		}

		logger.L().Info("demo order created",
			zap.Int("order_id", order.ID),
			zap.String("status", string(order.Status)),
		)
	}

	return nil
}
