package models

// User is a registered player. CreatedAt is an ISO-8601 timestamp.
type User struct {
	Pseudo    string `gorm:"primaryKey;size:191" json:"pseudo" dynamodbav:"pseudo"`
	CreatedAt string `gorm:"type:text;autoCreateTime:false" json:"createdAt" dynamodbav:"createdAt"`
}

func (User) TableName() string { return "users" }
