package models

import "time"

// Categories is the fixed set of resort-service categories guests pick from.
var Categories = []string{
	"Room Comfort",
	"Staff Service",
	"Dining Experience",
	"Water Park",
	"Spa Services",
	"Family Facilities",
	"Events & Weddings",
	"Nature & Views",
	"Security & Safety",
	"Value for Money",
}

// FeedbackStats is recomputed on demand and never stored.
type FeedbackStats struct {
	TotalCount         int            `json:"totalCount"`
	AverageRating      float64        `json:"averageRating"`
	CategoryBreakdown  map[string]int `json:"categoryBreakdown"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	PendingCount       int            `json:"pendingCount"`
	RespondedCount     int            `json:"respondedCount"`
	ReviewedCount      int            `json:"reviewedCount"`
	TrendsData         []TrendBucket  `json:"trendsData"`
}

// TrendBucket covers one local calendar day.
type TrendBucket struct {
	Date          string  `json:"date"`
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
}

type CategoryTrend struct {
	Recent float64 `bson:"recent" firestore:"recent" json:"recent"`
	Month  float64 `bson:"month" firestore:"month" json:"month"`
	Change float64 `bson:"change" firestore:"change" json:"change"`
}

// RatingTrends compares the 7-day and 30-day rating averages. The latest
// result is cached as a snapshot document.
type RatingTrends struct {
	OverallRecent  float64                  `bson:"overallRecent" firestore:"overallRecent" json:"overallRecent"`
	OverallMonth   float64                  `bson:"overallMonth" firestore:"overallMonth" json:"overallMonth"`
	OverallChange  float64                  `bson:"overallChange" firestore:"overallChange" json:"overallChange"`
	CategoryTrends map[string]CategoryTrend `bson:"categoryTrends" firestore:"categoryTrends" json:"categoryTrends"`
	UpdatedAt      time.Time                `bson:"updatedAt" firestore:"updatedAt" json:"updatedAt"`
}

// SummarySnapshot is the cached management summary.
type SummarySnapshot struct {
	Summary     string    `bson:"summary" firestore:"summary" json:"summary"`
	BasedOn     int       `bson:"basedOn" firestore:"basedOn" json:"basedOn"`
	Period      string    `bson:"period" firestore:"period" json:"period"`
	GeneratedAt time.Time `bson:"generatedAt" firestore:"generatedAt" json:"generatedAt"`
}

type Language string

const (
	LanguageEnglish Language = "English"
	LanguageAmharic Language = "Amharic"
	LanguageFrench  Language = "French"
	LanguageArabic  Language = "Arabic"
)

func ParseLanguage(s string) (Language, bool) {
	switch l := Language(s); l {
	case LanguageEnglish, LanguageAmharic, LanguageFrench, LanguageArabic:
		return l, true
	case "":
		return LanguageEnglish, true
	}
	return "", false
}
