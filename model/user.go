package model

import "time"

type User struct {
	ID          string    `firestore:"-" json:"id"`
	Email       string    `firestore:"email" json:"email"`
	DisplayName string    `firestore:"displayName" json:"displayName"`
	PhotoURL    string    `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	Theme       string    `firestore:"theme" json:"theme"`
	Palette     string    `firestore:"palette" json:"palette"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}
