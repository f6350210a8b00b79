package models

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusResponded Status = "responded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusResponded:
		return true
	}
	return false
}

// Feedback is one guest-submitted rating and comment.
// ResponseDate is expected to be set exactly when Status is StatusResponded;
// nothing in the service enforces it.
type Feedback struct {
	ID           string      `bson:"-" firestore:"-" json:"id"`
	UserID       string      `bson:"userId,omitempty" firestore:"userId,omitempty" json:"userId,omitempty"`
	UserName     string      `bson:"userName,omitempty" firestore:"userName,omitempty" json:"userName,omitempty"`
	UserEmail    string      `bson:"userEmail,omitempty" firestore:"userEmail,omitempty" json:"userEmail,omitempty"`
	Rating       *int        `bson:"rating,omitempty" firestore:"rating,omitempty" json:"rating,omitempty"`
	Comment      string      `bson:"comment" firestore:"comment" json:"comment"`
	Category     string      `bson:"category,omitempty" firestore:"category,omitempty" json:"category,omitempty"`
	Status       Status      `bson:"status" firestore:"status" json:"status"`
	CreatedAt    time.Time   `bson:"createdAt" firestore:"createdAt,serverTimestamp" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updatedAt" firestore:"updatedAt,serverTimestamp" json:"updatedAt"`
	Response     string      `bson:"response,omitempty" firestore:"response,omitempty" json:"response,omitempty"`
	ResponseDate *time.Time  `bson:"responseDate,omitempty" firestore:"responseDate,omitempty" json:"responseDate,omitempty"`
	AIAnalysis   *AIAnalysis `bson:"aiAnalysis,omitempty" firestore:"aiAnalysis,omitempty" json:"aiAnalysis,omitempty"`
}

// HasRating reports whether the record carries a rating at all.
func (f *Feedback) HasRating() bool {
	return f.Rating != nil
}

// RatingValue returns the rating, or 0 when missing. Callers that aggregate
// must check HasRating first.
func (f *Feedback) RatingValue() int {
	if f.Rating == nil {
		return 0
	}
	return *f.Rating
}

// IntPtr is a small helper for building records with a rating.
func IntPtr(v int) *int {
	return &v
}

// AIAnalysis is the structured part of an AI-composed reply, stored on the
// record next to the response text once staff accepts it.
type AIAnalysis struct {
	SentimentScore     float64  `bson:"sentimentScore" firestore:"sentimentScore" json:"sentimentScore"`
	TopIssues          []string `bson:"topIssues" firestore:"topIssues" json:"topIssues"`
	RecommendedActions []string `bson:"recommendedActions" firestore:"recommendedActions" json:"recommendedActions"`
}

// ComposedResponse is what the response composer hands back for one record.
type ComposedResponse struct {
	SuggestedResponse  string   `json:"suggestedResponse"`
	SentimentScore     float64  `json:"sentimentScore"`
	TopIssues          []string `json:"topIssues"`
	RecommendedActions []string `json:"recommendedActions"`
}

func (c ComposedResponse) Analysis() *AIAnalysis {
	return &AIAnalysis{
		SentimentScore:     c.SentimentScore,
		TopIssues:          c.TopIssues,
		RecommendedActions: c.RecommendedActions,
	}
}
