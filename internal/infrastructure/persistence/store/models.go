package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GORM数据模型（infrastructure层），领域实体不依赖GORM，由仓储负责转换

// UUIDModel 主键为UUID字符串，插入前生成
type UUIDModel struct {
	ID string `gorm:"primaryKey;type:varchar(36)"`
}

// BeforeCreate 生成主键
func (m *UUIDModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// UserModel 用户（不物理删除）
type UserModel struct {
	UUIDModel
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	FirstName    string    `gorm:"size:100;not null"`
	LastName     string    `gorm:"size:100;not null"`
	Phone        *string   `gorm:"size:20"`
	Role         string    `gorm:"size:20;not null;default:customer;index"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (UserModel) TableName() string { return "users" }

// AuthorModel 作者
type AuthorModel struct {
	UUIDModel
	FirstName   string     `gorm:"size:100;not null;index:idx_author_name,priority:2"`
	LastName    string     `gorm:"size:100;not null;index:idx_author_name,priority:1"`
	Bio         *string    `gorm:"type:text"`
	BirthDate   *time.Time `gorm:"type:date"`
	Nationality *string    `gorm:"size:100"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (AuthorModel) TableName() string { return "authors" }

// CategoryModel 分类，parent_id自引用
type CategoryModel struct {
	UUIDModel
	Name        string  `gorm:"size:100;not null;index"`
	Description *string `gorm:"type:text"`
	ParentID    *string `gorm:"type:varchar(36);index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string { return "categories" }

// PublisherModel 出版社
type PublisherModel struct {
	UUIDModel
	Name      string  `gorm:"size:200;not null;index"`
	Address   *string `gorm:"type:text"`
	City      *string `gorm:"size:100"`
	Country   *string `gorm:"size:100"`
	Phone     *string `gorm:"size:20"`
	Email     *string `gorm:"size:255"`
	Website   *string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PublisherModel) TableName() string { return "publishers" }

// BookModel 图书
type BookModel struct {
	UUIDModel
	ISBN            string          `gorm:"uniqueIndex;size:20;not null"`
	Title           string          `gorm:"size:255;not null;index"`
	Description     *string         `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock           int             `gorm:"not null;default:0"`
	Pages           *int
	PublicationDate *time.Time `gorm:"type:date"`
	Language        string     `gorm:"size:50;not null;default:Spanish"`
	PublisherID     *string    `gorm:"type:varchar(36);index"`
	CategoryID      *string    `gorm:"type:varchar(36);index"`
	CoverImageURL   *string    `gorm:"size:500"`
	IsActive        bool       `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (BookModel) TableName() string { return "books" }

// BookAuthorModel 图书-作者关联，(book_id, author_id)唯一
type BookAuthorModel struct {
	UUIDModel
	BookID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_book_author"`
	AuthorID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_book_author;index"`
	IsPrimary bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (BookAuthorModel) TableName() string { return "book_authors" }

// AddressModel 收货地址
type AddressModel struct {
	UUIDModel
	UserID     string  `gorm:"type:varchar(36);not null;index"`
	Street     string  `gorm:"size:255;not null"`
	City       string  `gorm:"size:100;not null"`
	State      *string `gorm:"size:100"`
	PostalCode string  `gorm:"size:20;not null"`
	Country    string  `gorm:"size:100;not null"`
	IsDefault  bool    `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (AddressModel) TableName() string { return "addresses" }

// CartItemModel 购物车项，(user_id, book_id)唯一
type CartItemModel struct {
	UUIDModel
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_book"`
	BookID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_book;index"`
	Quantity  int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItemModel) TableName() string { return "cart_items" }

// OrderModel 订单
type OrderModel struct {
	UUIDModel
	UserID         string          `gorm:"type:varchar(36);not null;index"`
	AddressID      string          `gorm:"type:varchar(36);not null"`
	Status         string          `gorm:"size:20;not null;default:pending;index"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DiscountCode   *string         `gorm:"size:50"`
	CreatedAt      time.Time       `gorm:"index"`
	UpdatedAt      time.Time
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单明细（单价快照）
type OrderItemModel struct {
	UUIDModel
	OrderID   string          `gorm:"type:varchar(36);not null;index"`
	BookID    string          `gorm:"type:varchar(36);not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt time.Time
}

func (OrderItemModel) TableName() string { return "order_items" }

// ReviewModel 评价，(user_id, book_id)唯一
type ReviewModel struct {
	UUIDModel
	UserID    string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_book"`
	BookID    string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_review_user_book;index"`
	Rating    int     `gorm:"not null"`
	Comment   *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReviewModel) TableName() string { return "reviews" }
