package models

import "time"

type Comment struct {
	ID        string    `json:"id" firestore:"-"`
	BlogID    string    `json:"blogId" firestore:"blogId"`
	Author    string    `json:"author" firestore:"author"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	Likes     int64     `json:"likes" firestore:"likes"`
}
