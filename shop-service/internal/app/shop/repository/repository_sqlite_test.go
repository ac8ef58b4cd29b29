package repository

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"perfumeshop/pkg/metrics"
	"perfumeshop/shop-service/internal/app/shop/entity"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// StoreTestSuite гоняет репозитории против in-memory sqlite с включенными foreign keys
type StoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	sqlDB *sql.DB

	countries CountryRepository
	brands    BrandRepository
	users     UserRepository
	products  ProductRepository
	carts     CartRepository
	contents  CartContentRepository
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())

	var err error
	s.db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(s.T(), err)

	s.sqlDB, err = s.db.DB()
	require.NoError(s.T(), err)
	s.sqlDB.SetMaxOpenConns(1)

	require.NoError(s.T(), Migrate(context.Background(), s.db))

	s.countries = NewCountryRepository(s.db)
	s.brands = NewBrandRepository(s.db)
	s.users = NewUserRepository(s.db)
	s.products = NewProductRepository(s.db)
	s.carts = NewCartRepository(s.db)
	s.contents = NewCartContentRepository(s.db)
}

func (s *StoreTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

// ===================== helpers =====================

func strPtr(v string) *string { return &v }
func intPtr(v int) *int       { return &v }

func (s *StoreTestSuite) mustCountry(name string) *entity.Country {
	country := &entity.Country{Country: name}
	s.Require().NoError(s.countries.Create(context.Background(), country))
	return country
}

func (s *StoreTestSuite) mustBrand(name string, countryID int64) *entity.Brand {
	brand := &entity.Brand{Brand: strPtr(name), CountryID: countryID}
	s.Require().NoError(s.brands.Create(context.Background(), brand))
	return brand
}

func (s *StoreTestSuite) mustUser(username string) *entity.User {
	user := &entity.User{Username: username, PasswordHash: "$2a$10$hash"}
	s.Require().NoError(s.users.Create(context.Background(), user))
	return user
}

func (s *StoreTestSuite) mustProduct(url string, brandID int64) *entity.Product {
	product := &entity.Product{ProdURL: url, BrandID: brandID}
	s.Require().NoError(s.products.Create(context.Background(), product))
	return product
}

func (s *StoreTestSuite) mustCart(userID int64) *entity.Cart {
	cart := &entity.Cart{UserID: userID}
	s.Require().NoError(s.carts.Create(context.Background(), cart))
	return cart
}

func (s *StoreTestSuite) mustContent(cartID, productID int64, qty int) *entity.CartContent {
	content := &entity.CartContent{CartID: cartID, ProductID: productID, Quantity: intPtr(qty)}
	s.Require().NoError(s.contents.Create(context.Background(), content))
	return content
}

func (s *StoreTestSuite) countContents(productID int64) int64 {
	var n int64
	s.Require().NoError(s.db.Model(&entity.CartContent{}).Where("product_id = ?", productID).Count(&n).Error)
	return n
}

// ===================== Schema =====================

func (s *StoreTestSuite) foreignKeyTargets(table string) []string {
	var targets []string
	s.Require().NoError(s.db.Raw(`SELECT "table" FROM pragma_foreign_key_list(?) ORDER BY "table"`, table).Scan(&targets).Error)
	return targets
}

func (s *StoreTestSuite) TestMigrate_ForeignKeysPointToParents() {
	s.Empty(s.foreignKeyTargets("countries"))
	s.Empty(s.foreignKeyTargets("users"))
	s.Equal([]string{"countries"}, s.foreignKeyTargets("brands"))
	s.Equal([]string{"brands"}, s.foreignKeyTargets("products"))
	s.Equal([]string{"users"}, s.foreignKeyTargets("carts"))
	s.Equal([]string{"carts", "products"}, s.foreignKeyTargets("cart_content"))
}

// ===================== Round trip =====================

func (s *StoreTestSuite) TestCountry_CreateAndGet() {
	country := s.mustCountry("France")

	s.Equal(int64(1), country.CountryID)
	got, err := s.countries.GetByID(context.Background(), country.CountryID)
	s.Require().NoError(err)
	s.Equal(*country, *got)
}

func (s *StoreTestSuite) TestBrand_CreateAndGet() {
	country := s.mustCountry("France")
	brand := s.mustBrand("Chanel", country.CountryID)

	got, err := s.brands.GetByID(context.Background(), brand.BrandID)
	s.Require().NoError(err)
	s.Equal(*brand, *got)
	s.Equal(country.CountryID, got.CountryID)
}

func (s *StoreTestSuite) TestCartContent_CreateAndGet() {
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	product := s.mustProduct("http://a", brand.BrandID)
	cart := s.mustCart(s.mustUser("anna").UserID)
	content := s.mustContent(cart.CartID, product.ProductID, 2)

	got, err := s.contents.GetByID(context.Background(), content.CartContentID)
	s.Require().NoError(err)
	s.Equal(*content, *got)
}

func (s *StoreTestSuite) TestUser_CreateAndGet() {
	ctx := context.Background()
	birthdate, err := entity.ParseDate("1990-05-01")
	s.Require().NoError(err)

	user := &entity.User{
		Username:     "anna",
		FullName:     strPtr("Anna K"),
		Mail:         strPtr("anna@example.com"),
		Birthdate:    &birthdate,
		City:         strPtr("Paris"),
		PasswordHash: "$2a$10$hash",
	}
	s.Require().NoError(s.users.Create(ctx, user))

	got, err := s.users.GetByID(ctx, user.UserID)
	s.Require().NoError(err)
	s.Equal("anna", got.Username)
	s.Equal("Anna K", *got.FullName)
	s.Require().NotNil(got.Birthdate)
	s.Equal("1990-05-01", got.Birthdate.String())
	s.Nil(got.Sex)
	s.Equal("$2a$10$hash", got.PasswordHash)
}

func (s *StoreTestSuite) TestProduct_CreateAndGet() {
	ctx := context.Background()
	country := s.mustCountry("France")
	brand := s.mustBrand("Chanel", country.CountryID)
	ratingCount := int64(1200)

	product := &entity.Product{
		ProdURL:     "http://x",
		Perfume:     strPtr("No 5"),
		Gender:      strPtr("women"),
		RatingValue: decimal.NewNullDecimal(decimal.RequireFromString("4.5")),
		RatingCount: &ratingCount,
		CreateYear:  intPtr(1921),
		TopNote:     strPtr("aldehydes"),
		Price:       decimal.NewNullDecimal(decimal.RequireFromString("135.5")),
		BrandID:     brand.BrandID,
		Quantity:    intPtr(10),
	}
	s.Require().NoError(s.products.Create(ctx, product))

	got, err := s.products.GetByID(ctx, product.ProductID)
	s.Require().NoError(err)
	s.Equal("http://x", got.ProdURL)
	s.Equal("No 5", *got.Perfume)
	s.True(got.RatingValue.Decimal.Equal(decimal.RequireFromString("4.5")))
	s.Equal(int64(1200), *got.RatingCount)
	s.Equal(1921, *got.CreateYear)
	s.True(got.Price.Decimal.Equal(decimal.RequireFromString("135.5")))
	s.Nil(got.MiddleNote)
	s.Equal(10, *got.Quantity)
}

func (s *StoreTestSuite) TestCart_CreateHasEmptyItems() {
	user := s.mustUser("anna")
	cart := s.mustCart(user.UserID)

	s.False(cart.Shipped)
	s.NotNil(cart.Items)
	s.Empty(cart.Items)

	got, err := s.carts.GetByID(context.Background(), cart.CartID)
	s.Require().NoError(err)
	s.NotNil(got.Items)
	s.Empty(got.Items)
}

func (s *StoreTestSuite) TestCart_GetPreloadsItemsInOrder() {
	country := s.mustCountry("France")
	brand := s.mustBrand("Chanel", country.CountryID)
	p1 := s.mustProduct("http://a", brand.BrandID)
	p2 := s.mustProduct("http://b", brand.BrandID)
	cart := s.mustCart(s.mustUser("anna").UserID)

	c1 := s.mustContent(cart.CartID, p2.ProductID, 1)
	c2 := s.mustContent(cart.CartID, p1.ProductID, 3)

	got, err := s.carts.GetByID(context.Background(), cart.CartID)
	s.Require().NoError(err)
	s.Require().Len(got.Items, 2)
	s.Equal(c1.CartContentID, got.Items[0].CartContentID)
	s.Equal(c2.CartContentID, got.Items[1].CartContentID)
	s.Equal(3, *got.Items[1].Quantity)

	list, err := s.carts.List(context.Background(), entity.Page{Skip: 0, Limit: 10})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Len(list[0].Items, 2)
}

func (s *StoreTestSuite) TestGetByID_NotFound() {
	ctx := context.Background()

	_, err := s.countries.GetByID(ctx, 99)
	s.ErrorIs(err, ErrCountryNotFound)
	_, err = s.brands.GetByID(ctx, 99)
	s.ErrorIs(err, ErrBrandNotFound)
	_, err = s.users.GetByID(ctx, 99)
	s.ErrorIs(err, ErrUserNotFound)
	_, err = s.products.GetByID(ctx, 99)
	s.ErrorIs(err, ErrProductNotFound)
	_, err = s.carts.GetByID(ctx, 99)
	s.ErrorIs(err, ErrCartNotFound)
	_, err = s.contents.GetByID(ctx, 99)
	s.ErrorIs(err, ErrCartContentNotFound)
}

func (s *StoreTestSuite) TestGetByID_NotFoundIsNotDbError() {
	ctx := context.Background()
	dbErrors := metrics.DbErrors.WithLabelValues(metricsService, string(metrics.DbOpSelect))
	before := testutil.ToFloat64(dbErrors)

	_, err := s.countries.GetByID(ctx, 99)
	s.ErrorIs(err, ErrCountryNotFound)
	_, err = s.brands.GetByID(ctx, 99)
	s.ErrorIs(err, ErrBrandNotFound)
	_, err = s.contents.GetByID(ctx, 99)
	s.ErrorIs(err, ErrCartContentNotFound)

	s.Equal(before, testutil.ToFloat64(dbErrors))
}

// ===================== Pagination =====================

func (s *StoreTestSuite) TestList_PaginationIsOrderedPrefix() {
	ctx := context.Background()
	for _, name := range []string{"France", "Italy", "Spain", "Japan", "Brazil"} {
		s.mustCountry(name)
	}

	for n := 0; n <= 5; n++ {
		short, err := s.countries.List(ctx, entity.Page{Skip: 0, Limit: n})
		s.Require().NoError(err)
		long, err := s.countries.List(ctx, entity.Page{Skip: 0, Limit: n + 1})
		s.Require().NoError(err)

		s.LessOrEqual(len(short), n)
		s.Equal(short, long[:len(short)])
		for i := 1; i < len(long); i++ {
			s.Less(long[i-1].CountryID, long[i].CountryID)
		}
	}

	page, err := s.countries.List(ctx, entity.Page{Skip: 3, Limit: 100})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal("Japan", page[0].Country)
}

func (s *StoreTestSuite) TestList_EmptyTableReturnsEmptySlice() {
	products, err := s.products.List(context.Background(), entity.Page{Skip: 0, Limit: 100})

	s.NoError(err)
	s.NotNil(products)
	s.Empty(products)
}

func (s *StoreTestSuite) TestCartContent_ListByCart() {
	ctx := context.Background()
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	product := s.mustProduct("http://a", brand.BrandID)
	user := s.mustUser("anna")
	cart1 := s.mustCart(user.UserID)
	cart2 := s.mustCart(user.UserID)
	s.mustContent(cart1.CartID, product.ProductID, 1)
	s.mustContent(cart2.CartID, product.ProductID, 2)
	s.mustContent(cart1.CartID, product.ProductID, 3)

	items, err := s.contents.ListByCart(ctx, cart1.CartID, entity.Page{Skip: 0, Limit: 100})
	s.Require().NoError(err)
	s.Require().Len(items, 2)
	s.Equal(1, *items[0].Quantity)
	s.Equal(3, *items[1].Quantity)

	all, err := s.contents.List(ctx, entity.Page{Skip: 1, Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(cart2.CartID, all[0].CartID)
}

// ===================== Constraints =====================

func (s *StoreTestSuite) TestCountry_DuplicateName() {
	s.mustCountry("France")

	err := s.countries.Create(context.Background(), &entity.Country{Country: "France"})

	s.ErrorIs(err, ErrDuplicateKey)
	count, err := s.countries.Count(context.Background())
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *StoreTestSuite) TestUser_DuplicateUsername() {
	s.mustUser("anna")

	err := s.users.Create(context.Background(), &entity.User{Username: "anna", PasswordHash: "x"})

	s.ErrorIs(err, ErrDuplicateKey)
}

func (s *StoreTestSuite) TestBrand_UnknownCountry() {
	err := s.brands.Create(context.Background(), &entity.Brand{Brand: strPtr("Chanel"), CountryID: 42})

	s.ErrorIs(err, ErrForeignKey)
	count, err := s.brands.Count(context.Background())
	s.NoError(err)
	s.Zero(count)
}

func (s *StoreTestSuite) TestProduct_UnknownBrand() {
	err := s.products.Create(context.Background(), &entity.Product{ProdURL: "http://x", BrandID: 7})

	s.ErrorIs(err, ErrForeignKey)
}

func (s *StoreTestSuite) TestCart_UnknownUser() {
	err := s.carts.Create(context.Background(), &entity.Cart{UserID: 7})

	s.ErrorIs(err, ErrForeignKey)
}

func (s *StoreTestSuite) TestCartContent_UnknownCartOrProduct() {
	ctx := context.Background()
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	product := s.mustProduct("http://a", brand.BrandID)
	cart := s.mustCart(s.mustUser("anna").UserID)

	err := s.contents.Create(ctx, &entity.CartContent{CartID: 99, ProductID: product.ProductID})
	s.ErrorIs(err, ErrForeignKey)

	err = s.contents.Create(ctx, &entity.CartContent{CartID: cart.CartID, ProductID: 99})
	s.ErrorIs(err, ErrForeignKey)

	count, err := s.contents.Count(ctx)
	s.NoError(err)
	s.Zero(count)
}

// ===================== Cascade delete =====================

func (s *StoreTestSuite) TestProductDelete_RemovesCartContents() {
	ctx := context.Background()
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	target := s.mustProduct("http://a", brand.BrandID)
	other := s.mustProduct("http://b", brand.BrandID)
	user := s.mustUser("anna")
	cart1 := s.mustCart(user.UserID)
	cart2 := s.mustCart(user.UserID)
	s.mustContent(cart1.CartID, target.ProductID, 1)
	s.mustContent(cart2.CartID, target.ProductID, 2)
	s.mustContent(cart1.CartID, other.ProductID, 1)

	removed, err := s.products.Delete(ctx, target.ProductID)

	s.Require().NoError(err)
	s.Equal(int64(2), removed)
	s.Zero(s.countContents(target.ProductID))
	s.Equal(int64(1), s.countContents(other.ProductID))
	_, err = s.products.GetByID(ctx, target.ProductID)
	s.ErrorIs(err, ErrProductNotFound)

	// корзины не удаляются вместе с позициями
	exists, err := s.carts.Exists(ctx, cart2.CartID)
	s.NoError(err)
	s.True(exists)
}

func (s *StoreTestSuite) TestProductDelete_WithoutCartContents() {
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	product := s.mustProduct("http://a", brand.BrandID)

	removed, err := s.products.Delete(context.Background(), product.ProductID)

	s.NoError(err)
	s.Zero(removed)
}

func (s *StoreTestSuite) TestProductDelete_NonexistentLeavesStateUnchanged() {
	ctx := context.Background()
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	product := s.mustProduct("http://a", brand.BrandID)
	cart := s.mustCart(s.mustUser("anna").UserID)
	s.mustContent(cart.CartID, product.ProductID, 1)

	removed, err := s.products.Delete(ctx, 999)

	s.ErrorIs(err, ErrProductNotFound)
	s.Zero(removed)
	productCount, err := s.products.Count(ctx)
	s.NoError(err)
	s.Equal(int64(1), productCount)
	contentCount, err := s.contents.Count(ctx)
	s.NoError(err)
	s.Equal(int64(1), contentCount)
}

func (s *StoreTestSuite) TestExampleScenario() {
	ctx := context.Background()

	country := s.mustCountry("France")
	s.Equal(int64(1), country.CountryID)
	brand := s.mustBrand("Chanel", country.CountryID)
	s.Equal(int64(1), brand.BrandID)
	product := s.mustProduct("http://x", brand.BrandID)
	s.Equal(int64(1), product.ProductID)
	cart := s.mustCart(s.mustUser("anna").UserID)
	s.Equal(int64(1), cart.CartID)
	content := s.mustContent(cart.CartID, product.ProductID, 2)
	s.Equal(int64(1), content.CartContentID)

	removed, err := s.products.Delete(ctx, product.ProductID)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	s.Zero(s.countContents(product.ProductID))
	_, err = s.products.GetByID(ctx, product.ProductID)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *StoreTestSuite) TestCounts() {
	ctx := context.Background()
	brand := s.mustBrand("Chanel", s.mustCountry("France").CountryID)
	s.mustProduct("http://a", brand.BrandID)
	s.mustProduct("http://b", brand.BrandID)

	n, err := s.products.Count(ctx)
	s.NoError(err)
	s.Equal(int64(2), n)

	n, err = s.users.Count(ctx)
	s.NoError(err)
	s.Zero(n)
}
