package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/hamzatariq-git/shopmate-api/models"
	"github.com/hamzatariq-git/shopmate-api/services"
	"github.com/hamzatariq-git/shopmate-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// -------- Fakes --------

type fakeCartRepo struct {
	carts map[primitive.ObjectID]*models.Cart
}

var _ storage.CartStorage = (*fakeCartRepo)(nil)

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[primitive.ObjectID]*models.Cart)}
}

func (f *fakeCartRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	cart, ok := f.carts[id]
	if !ok {
		return nil, storage.ErrCartNotFound
	}
	copied := *cart
	return &copied, nil
}

func (f *fakeCartRepo) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	for _, cart := range f.carts {
		if cart.UserID == userID {
			copied := *cart
			return &copied, nil
		}
	}
	return nil, storage.ErrCartNotFound
}

func (f *fakeCartRepo) Upsert(ctx context.Context, cart *models.Cart) error {
	if cart.ID.IsZero() {
		cart.ID = primitive.NewObjectID()
	}
	copied := *cart
	f.carts[cart.ID] = &copied
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := f.carts[id]; !ok {
		return storage.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}

type fakeOrderRepo struct {
	orders []*models.Order
}

var _ storage.OrderStorage = (*fakeOrderRepo)(nil)

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepo) GetLatestByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Order, error) {
	var latest *models.Order
	for _, o := range f.orders {
		if o.UserID != userID {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, storage.ErrOrderNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeProductRepo struct {
	products   map[primitive.ObjectID]*models.Product
	deltaCalls [][]models.CartItem
}

var _ storage.ProductStorage = (*fakeProductRepo)(nil)

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = primitive.NewObjectID()
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, storage.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			byID[id] = *p
		}
	}
	return byID, nil
}

func (f *fakeProductRepo) GetAll(ctx context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) ApplyOrderDeltas(ctx context.Context, items []models.CartItem) error {
	f.deltaCalls = append(f.deltaCalls, items)
	for _, item := range items {
		if p, ok := f.products[item.ProductID]; ok {
			p.Quantity -= item.Quantity
			p.Sold += item.Quantity
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*models.User // keyed by email
}

var _ storage.UserStorage = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := f.users[user.Email]; ok {
		return nil, storage.ErrEmailTaken
	}
	user.ID = primitive.NewObjectID()
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return u, nil
}

type fakeCheckoutClient struct {
	lastParams services.CheckoutParams
	session    *stripe.CheckoutSession
}

var _ services.CheckoutClient = (*fakeCheckoutClient)(nil)

func (f *fakeCheckoutClient) CreateCheckoutSession(ctx context.Context, p services.CheckoutParams) (*stripe.CheckoutSession, error) {
	f.lastParams = p
	return f.session, nil
}

// -------- Fixtures --------

type orderServiceFixture struct {
	carts    *fakeCartRepo
	orders   *fakeOrderRepo
	products *fakeProductRepo
	users    *fakeUserRepo
	checkout *fakeCheckoutClient
	svc      services.OrderService
}

func newOrderServiceFixture() *orderServiceFixture {
	f := &orderServiceFixture{
		carts:    newFakeCartRepo(),
		orders:   &fakeOrderRepo{},
		products: newFakeProductRepo(),
		users:    newFakeUserRepo(),
		checkout: &fakeCheckoutClient{session: &stripe.CheckoutSession{ID: "cs_test_123", URL: "https://checkout.example/cs_test_123"}},
	}
	f.svc = services.NewOrderService(f.carts, f.orders, f.products, f.users, f.checkout)
	return f
}

// seedCart installs a product with stock and a cart holding qty units of it.
func (f *orderServiceFixture) seedCart(total, discounted float64, qty, stock int) (*models.Cart, *models.Product) {
	product := &models.Product{Name: "Teapot", Price: total / float64(qty), Quantity: stock}
	f.products.Create(context.Background(), product)

	cart := &models.Cart{
		ID:                      primitive.NewObjectID(),
		UserID:                  primitive.NewObjectID(),
		CartItems:               []models.CartItem{{ProductID: product.ID, Quantity: qty, Price: product.Price}},
		TotalPrice:              total,
		TotalPriceAfterDiscount: discounted,
	}
	f.carts.carts[cart.ID] = cart
	return cart, product
}

// -------- Cash orders --------

func TestCreateCashOrderUsesDiscountedTotal(t *testing.T) {
	f := newOrderServiceFixture()
	cart, product := f.seedCart(100, 80, 2, 10)
	addr := models.Address{Street: "1 Main St", City: "Cairo", Phone: "0100"}

	order, err := f.svc.CreateCashOrder(context.Background(), cart.ID.Hex(), cart.UserID, addr)
	require.NoError(t, err)

	assert.Equal(t, 80.0, order.TotalOrderPrice)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.PaidAt)
	assert.Equal(t, addr, order.ShippingAddress)
	assert.Equal(t, cart.UserID, order.UserID)
	assert.NotEmpty(t, order.OrderRef)

	// Stock decremented, sold incremented by the item quantity.
	assert.Equal(t, 8, f.products.products[product.ID].Quantity)
	assert.Equal(t, 2, f.products.products[product.ID].Sold)

	// Cart is consumed.
	_, err = f.carts.GetByID(context.Background(), cart.ID)
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
}

func TestCreateCashOrderFallsBackToPlainTotal(t *testing.T) {
	f := newOrderServiceFixture()
	cart, _ := f.seedCart(100, 0, 2, 10)

	order, err := f.svc.CreateCashOrder(context.Background(), cart.ID.Hex(), cart.UserID, models.Address{})
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.TotalOrderPrice)
}

func TestCreateCashOrderCartNotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateCashOrder(context.Background(), primitive.NewObjectID().Hex(), primitive.NewObjectID(), models.Address{})
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
	assert.Empty(t, f.orders.orders, "no order may be created for a missing cart")
	assert.Empty(t, f.products.deltaCalls)
}

func TestCreateCashOrderRejectsMalformedCartID(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateCashOrder(context.Background(), "not-a-hex-id", primitive.NewObjectID(), models.Address{})
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
}

// -------- Checkout sessions --------

func TestCreateCheckoutSessionBuildsProviderParams(t *testing.T) {
	f := newOrderServiceFixture()
	cart, _ := f.seedCart(100, 80, 2, 10)
	user := &models.User{ID: cart.UserID, Name: "Hamza", Email: "hamza@example.com"}
	addr := models.Address{Street: "1 Main St", City: "Cairo", Phone: "0100"}

	session, err := f.svc.CreateCheckoutSession(context.Background(), cart.ID.Hex(), user, addr)
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)

	p := f.checkout.lastParams
	assert.Equal(t, cart.ID.Hex(), p.CartID)
	assert.Equal(t, "hamza@example.com", p.CustomerEmail)
	assert.Equal(t, "Hamza", p.ProductLabel)
	assert.Equal(t, "egp", p.Currency)
	assert.Equal(t, int64(8000), p.UnitAmount, "unit amount is the discounted total in minor units")
	assert.JSONEq(t, `{"street":"1 Main St","city":"Cairo","phone":"0100"}`, p.ShippingAddressJSON)
}

func TestCreateCheckoutSessionRoundsUnitAmount(t *testing.T) {
	f := newOrderServiceFixture()
	cart, _ := f.seedCart(19.999, 0, 1, 5)
	user := &models.User{Name: "Hamza", Email: "hamza@example.com"}

	_, err := f.svc.CreateCheckoutSession(context.Background(), cart.ID.Hex(), user, models.Address{})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), f.checkout.lastParams.UnitAmount)
}

func TestCreateCheckoutSessionCartNotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.CreateCheckoutSession(context.Background(), primitive.NewObjectID().Hex(), &models.User{}, models.Address{})
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
}

// -------- Webhook finalization --------

func TestFinalizeCardOrder(t *testing.T) {
	f := newOrderServiceFixture()
	cart, product := f.seedCart(100, 80, 2, 10)
	user, err := f.users.Create(context.Background(), &models.User{Name: "Hamza", Email: "hamza@example.com"})
	require.NoError(t, err)

	order, err := f.svc.FinalizeCardOrder(context.Background(), services.CompletedSession{
		CartID:              cart.ID.Hex(),
		CustomerEmail:       "hamza@example.com",
		AmountTotal:         8000,
		ShippingAddressJSON: `{"street":"1 Main St","city":"Cairo","phone":"0100"}`,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentMethodCard, order.PaymentMethod)
	assert.True(t, order.IsPaid)
	require.NotNil(t, order.PaidAt)
	assert.WithinDuration(t, time.Now(), *order.PaidAt, time.Minute)
	assert.Equal(t, 80.0, order.TotalOrderPrice, "amount converted back from minor units")
	assert.Equal(t, user.ID, order.UserID)
	assert.Equal(t, models.Address{Street: "1 Main St", City: "Cairo", Phone: "0100"}, order.ShippingAddress)

	assert.Equal(t, 8, f.products.products[product.ID].Quantity)
	assert.Equal(t, 2, f.products.products[product.ID].Sold)

	_, err = f.carts.GetByID(context.Background(), cart.ID)
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
}

func TestFinalizeCardOrderCartAlreadyConsumed(t *testing.T) {
	f := newOrderServiceFixture()
	f.users.Create(context.Background(), &models.User{Email: "hamza@example.com"})

	_, err := f.svc.FinalizeCardOrder(context.Background(), services.CompletedSession{
		CartID:        primitive.NewObjectID().Hex(),
		CustomerEmail: "hamza@example.com",
		AmountTotal:   8000,
	})
	assert.ErrorIs(t, err, storage.ErrCartNotFound)
	assert.Empty(t, f.orders.orders)
}

func TestFinalizeCardOrderUnknownUser(t *testing.T) {
	f := newOrderServiceFixture()
	cart, _ := f.seedCart(100, 0, 1, 5)

	_, err := f.svc.FinalizeCardOrder(context.Background(), services.CompletedSession{
		CartID:        cart.ID.Hex(),
		CustomerEmail: "nobody@example.com",
		AmountTotal:   10000,
	})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Empty(t, f.orders.orders)
}

// -------- Reads --------

func TestGetSpecificOrderExpandsProducts(t *testing.T) {
	f := newOrderServiceFixture()
	cart, product := f.seedCart(100, 0, 2, 10)

	created, err := f.svc.CreateCashOrder(context.Background(), cart.ID.Hex(), cart.UserID, models.Address{})
	require.NoError(t, err)

	order, err := f.svc.GetSpecificOrder(context.Background(), cart.UserID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, order.ID)
	require.Len(t, order.CartItems, 1)
	require.NotNil(t, order.CartItems[0].Product)
	assert.Equal(t, product.ID, order.CartItems[0].Product.ID)
	assert.Equal(t, "Teapot", order.CartItems[0].Product.Name)
}

func TestGetSpecificOrderNotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.svc.GetSpecificOrder(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, storage.ErrOrderNotFound)
}

func TestGetAllOrders(t *testing.T) {
	f := newOrderServiceFixture()
	cartA, _ := f.seedCart(100, 0, 1, 5)
	cartB, _ := f.seedCart(50, 40, 1, 5)

	_, err := f.svc.CreateCashOrder(context.Background(), cartA.ID.Hex(), cartA.UserID, models.Address{})
	require.NoError(t, err)
	_, err = f.svc.CreateCashOrder(context.Background(), cartB.ID.Hex(), cartB.UserID, models.Address{})
	require.NoError(t, err)

	orders, err := f.svc.GetAllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		require.Len(t, o.CartItems, 1)
		assert.NotNil(t, o.CartItems[0].Product)
	}
}
