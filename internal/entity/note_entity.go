package entity

import "time"

// Note is the metadata record of one uploaded file. The bytes live in the
// blob store under PublicId.
type Note struct {
	Id        string    `json:"id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	Subject   string    `json:"subject" bson:"subject"`
	Desc      string    `json:"desc" bson:"desc"`
	Type      string    `json:"type" bson:"type"`
	FileName  string    `json:"fileName" bson:"fileName"`
	FileUrl   string    `json:"fileUrl" bson:"fileUrl"`
	PublicId  string    `json:"publicId" bson:"publicId"`
	FileType  string    `json:"fileType" bson:"fileType"`
	FileSize  int64     `json:"fileSize" bson:"fileSize"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
