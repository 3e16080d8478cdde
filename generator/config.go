package generator

import (
	"time"

	"aisolutions-backend/models"

	"github.com/shopspring/decimal"
)

// Range is an inclusive numeric interval.
type Range[T int | float64] struct {
	Min T
	Max T
}

// Config holds every enumeration and numeric range the generator samples from.
type Config struct {
	Genders               []models.Gender
	CustomerTypes         []models.CustomerType
	SubscriptionTypes     []models.SubscriptionType
	SubscriptionPrices    map[models.SubscriptionType]decimal.Decimal
	MembershipBenefits    []string
	SubscriptionDurations []string
	ProductTypes          []string
	Inquiries             []string
	PaymentMethods        []string
	PromoEvents           []string
	Statuses              []models.ProductStatus

	Age          Range[int]
	ProductID    Range[int]
	ResponseDays Range[int]
	Cost         Range[float64]
	Price        Range[float64]

	DateFrom time.Time
	DateTo   time.Time

	CancellationFee decimal.Decimal

	Comments CommentPools
}

// CommentPools are the word lists comments are assembled from.
type CommentPools struct {
	Positive     []string
	Neutral      []string
	Negative     []string
	Cancellation []string
	Failure      []string
}

func DefaultConfig() Config {
	return Config{
		Genders:           []models.Gender{models.GenderMale, models.GenderFemale},
		CustomerTypes:     []models.CustomerType{models.CustomerTypeMember},
		SubscriptionTypes: []models.SubscriptionType{models.SubscriptionPremium, models.SubscriptionStandard, models.SubscriptionFree},
		SubscriptionPrices: map[models.SubscriptionType]decimal.Decimal{
			models.SubscriptionPremium:  decimal.NewFromInt(50),
			models.SubscriptionStandard: decimal.NewFromInt(25),
			models.SubscriptionFree:     decimal.Zero,
		},
		MembershipBenefits:    []string{"Basic support", "Exclusive offers"},
		SubscriptionDurations: []string{"Monthly", "Yearly"},
		ProductTypes: []string{
			"Prototyping Tool",
			"Design Software",
			"Project Management Suite",
			"Collaboration Platform",
			"Data Analytics Tool",
			"Customer Relationship Management (CRM) Software",
			"Marketing Automation Tool",
			"E-commerce Platform",
			"Content Management System (CMS)",
			"Accounting Software",
			"Human Resources Management System (HRMS)",
			"Inventory Management System",
			"Email Marketing Software",
			"Website Builder",
			"Video Conferencing Tool",
			"Task Management App",
			"Social Media Management Tool",
			"Cloud Storage Solution",
			"Cybersecurity Software",
			"Artificial Intelligence (AI) Analytics Tool",
			"Chatbot and Conversational AI Platforms",
			"Video Editing Software",
			"Document Management System",
			"Learning Management System (LMS)",
			"Point of Sale (POS) Systems",
			"Supply Chain Management Software",
			"Business Intelligence (BI) Tools",
			"Graphic Design Software",
			"Mobile App Development Platforms",
			"Event Management Software",
			"Performance Management Software",
		},
		Inquiries:      []string{"Product question", "Promotional event", "Issue with product"},
		PaymentMethods: []string{"Credit Card", "PayPal", "Skrill", "Airpay"},
		PromoEvents: []string{
			"AI Technology Expos",
			"Workshops on Prototyping Solutions",
			"Webinars on AI Integration in Business",
			"Panel Discussions with AI Experts",
			"AI-Driven Marketing Strategy Sessions",
		},
		Statuses: []models.ProductStatus{models.StatusCompleted, models.StatusCanceled, models.StatusFailed},

		Age:          Range[int]{Min: 18, Max: 65},
		ProductID:    Range[int]{Min: 100, Max: 200},
		ResponseDays: Range[int]{Min: 1, Max: 10},
		Cost:         Range[float64]{Min: 20, Max: 100},
		Price:        Range[float64]{Min: 150, Max: 300},

		DateFrom: time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),

		CancellationFee: decimal.NewFromInt(20),

		Comments: CommentPools{
			Positive:     []string{"Excellent", "Great", "Loved", "Fantastic", "Highly recommend", "Will buy again"},
			Neutral:      []string{"Average", "Okay", "Not bad", "Could be better"},
			Negative:     []string{"Disappointed", "Not satisfied", "Would not recommend", "Poor quality", "Did not meet expectations"},
			Cancellation: []string{"Cancellation due to delays.", "Did not deliver on the expected date.", "Service was not as described.", "Unhappy with the customer support.", "Decided to cancel due to poor communication."},
			Failure:      []string{"Extremely disappointed!", "Product failed to meet expectations.", "Would not recommend this product.", "Very poor quality!", "Did not work as promised."},
		},
	}
}
