package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type CustomerType string

const CustomerTypeMember CustomerType = "Member"

type SubscriptionType string

const (
	SubscriptionPremium  SubscriptionType = "Premium"
	SubscriptionStandard SubscriptionType = "Standard"
	SubscriptionFree     SubscriptionType = "Free"
)

// ProductStatus is the outcome of a sale. It drives refund, profit, loss,
// rating and comment derivation.
type ProductStatus string

const (
	StatusCompleted ProductStatus = "Completed"
	StatusCanceled  ProductStatus = "Canceled"
	StatusFailed    ProductStatus = "Failed"
)

type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Record is one synthesized sales transaction.
type Record struct {
	ID uint `gorm:"primaryKey" json:"-"`

	CustomerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CustomerName string    `gorm:"not null" json:"customerName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Country      string    `gorm:"index" json:"country"`

	Gender Gender `gorm:"type:varchar(10)" json:"gender"`
	Age    int    `json:"age"`

	CompanyName          string           `json:"companyName"`
	CustomerType         CustomerType     `gorm:"type:varchar(20)" json:"customerType"`
	SubscriptionType     SubscriptionType `gorm:"type:varchar(20)" json:"subscriptionType"`
	MembershipBenefit    string           `json:"membershipBenefit"`
	SubscriptionDuration string           `gorm:"type:varchar(20)" json:"subscriptionDuration"`
	SubscriptionDate     time.Time        `gorm:"type:date" json:"subscriptionDate"`
	SubscriptionPrice    decimal.Decimal  `gorm:"type:decimal(10,2)" json:"subscriptionPrice"`

	ProductID   int    `json:"productId"`
	ProductType string `gorm:"index" json:"productType"`
	Inquiry     string `json:"inquiry"`

	CostOfProduct decimal.Decimal `gorm:"type:decimal(10,2)" json:"costOfProduct"`
	SalesAmount   decimal.Decimal `gorm:"type:decimal(10,2)" json:"salesAmount"`
	SalesDate     time.Time       `gorm:"type:date;index" json:"salesDate"`
	SalesTime     string          `gorm:"type:varchar(8)" json:"salesTime"`

	PaymentMethod      string        `json:"paymentMethod"`
	DemoScheduled      YesNo         `gorm:"type:varchar(3)" json:"demoScheduled"`
	PromoParticipation YesNo         `gorm:"type:varchar(3)" json:"promoParticipation"`
	PromoEvent         string        `json:"promoEvent"`
	ResponseTimeDays   int           `json:"responseTimeDays"`
	ProductStatus      ProductStatus `gorm:"type:varchar(10);index" json:"productStatus"`

	RefundAmount  decimal.Decimal `gorm:"type:decimal(10,2)" json:"refundAmount"`
	Comments      string          `gorm:"type:text" json:"comments"`
	ProductRating int             `json:"productRating"`
	Profit        decimal.Decimal `gorm:"type:decimal(10,2)" json:"profit"`
	Loss          decimal.Decimal `gorm:"type:decimal(10,2)" json:"loss"`
}

func (Record) TableName() string {
	return "sales_records"
}
