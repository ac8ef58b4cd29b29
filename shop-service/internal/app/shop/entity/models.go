package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Цены и рейтинги отдаются в JSON числами, как и остальные поля
	decimal.MarshalJSONWithoutQuotes = true
}

// Country - страна происхождения бренда
type Country struct {
	CountryID int64   `json:"country_id" gorm:"column:country_id;primaryKey"`
	Country   string  `json:"country" gorm:"column:country;type:varchar(255);unique;not null"`
	Brands    []Brand `json:"-" gorm:"foreignKey:CountryID;references:CountryID"`
}

func (Country) TableName() string {
	return "countries"
}

// Brand - парфюмерный бренд, всегда привязан к существующей стране
type Brand struct {
	BrandID   int64     `json:"brand_id" gorm:"column:brand_id;primaryKey"`
	Brand     *string   `json:"brand" gorm:"column:brand;type:varchar(255)"`
	CountryID int64     `json:"country_id" gorm:"column:country_id;not null"`
	Products  []Product `json:"-" gorm:"foreignKey:BrandID;references:BrandID"`
}

func (Brand) TableName() string {
	return "brands"
}

// User - покупатель. PasswordHash никогда не попадает в ответы API
type User struct {
	UserID        int64   `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username      string  `json:"username" gorm:"column:username;type:varchar(100);unique;not null"`
	FullName      *string `json:"full_name" gorm:"column:full_name;type:varchar(255)"`
	Sex           *string `json:"sex" gorm:"column:sex;type:varchar(10)"`
	Mail          *string `json:"mail" gorm:"column:mail;type:varchar(255)"`
	Birthdate     *Date   `json:"birthdate" gorm:"column:birthdate;type:date"`
	Country       *string `json:"country" gorm:"column:country;type:varchar(255)"`
	City          *string `json:"city" gorm:"column:city;type:varchar(255)"`
	StreetAddress *string `json:"street_address" gorm:"column:street_address;type:varchar(255)"`
	PasswordHash  string  `json:"-" gorm:"column:password_hash"`
	Carts         []Cart  `json:"-" gorm:"foreignKey:UserID;references:UserID"`
}

func (User) TableName() string {
	return "users"
}

// Product - позиция каталога (парфюм)
type Product struct {
	ProductID   int64               `json:"product_id" gorm:"column:product_id;primaryKey"`
	ProdURL     string              `json:"produrl" gorm:"column:produrl;type:varchar(2048);not null"`
	Perfume     *string             `json:"perfume" gorm:"column:perfume;type:varchar(255)"`
	Gender      *string             `json:"gender" gorm:"column:gender;type:varchar(50)"`
	RatingValue decimal.NullDecimal `json:"rating_value" gorm:"column:rating_value;type:decimal(5,2)"`
	RatingCount *int64              `json:"rating_count" gorm:"column:rating_count;type:decimal(10,0)"`
	CreateYear  *int                `json:"create_year" gorm:"column:create_year"`
	TopNote     *string             `json:"top_note" gorm:"column:top_note;type:varchar(4000)"`
	MiddleNote  *string             `json:"middle_note" gorm:"column:middle_note;type:varchar(4000)"`
	BaseNote    *string             `json:"base_note" gorm:"column:base_note;type:varchar(4000)"`
	Price       decimal.NullDecimal `json:"price" gorm:"column:price;type:decimal(10,2)"`
	BrandID     int64               `json:"brand_id" gorm:"column:brand_id;not null"`
	Quantity    *int                `json:"quantity" gorm:"column:quantity"`

	CartContents []CartContent `json:"-" gorm:"foreignKey:ProductID;references:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// Cart - корзина пользователя. Items заполняется только при чтении корзины
type Cart struct {
	CartID  int64         `json:"cart_id" gorm:"column:cart_id;primaryKey"`
	UserID  int64         `json:"user_id" gorm:"column:user_id;not null"`
	Shipped bool          `json:"shipped" gorm:"column:shipped;not null;default:false"`
	Items   []CartContent `json:"items" gorm:"foreignKey:CartID;references:CartID"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartContent - позиция корзины. Принадлежит корзине, на товар только ссылается
type CartContent struct {
	CartContentID int64 `json:"cart_content_id" gorm:"column:cart_content_id;primaryKey"`
	CartID        int64 `json:"cart_id" gorm:"column:cart_id;not null"`
	ProductID     int64 `json:"product_id" gorm:"column:product_id;not null"`
	Quantity      *int  `json:"quantity" gorm:"column:quantity"`
}

func (CartContent) TableName() string {
	return "cart_content"
}

// StatsCounts - ответ GET /stats/counts/
type StatsCounts struct {
	Users     int64 `json:"users"`
	Products  int64 `json:"products"`
	Brands    int64 `json:"brands"`
	Countries int64 `json:"countries"`
	Carts     int64 `json:"carts"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string              `json:"event_type"` // PRODUCT_CREATED, PRODUCT_DELETED
	ProductID int64               `json:"product_id"`
	BrandID   int64               `json:"brand_id,omitempty"`
	Perfume   *string             `json:"perfume,omitempty"`
	Price     decimal.NullDecimal `json:"price"`
	// RemovedCartContents - сколько позиций корзин удалено каскадом (только PRODUCT_DELETED)
	RemovedCartContents int64     `json:"removed_cart_contents,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductDeleted = "PRODUCT_DELETED"
)
