package models

// CodeAlphabet holds the 36 symbols a redemption code is drawn from (base-36 digits).
const CodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// CodeLength is the number of symbols in a redemption code.
const CodeLength = 4

// DayMillis is the length of one day in epoch milliseconds.
const DayMillis int64 = 24 * 60 * 60 * 1000

// Code is a redemption token worth Points, usable Available more times until ClosingAt.
// Timestamps are epoch milliseconds.
type Code struct {
	Code      string `gorm:"primaryKey;size:16" json:"code" dynamodbav:"code"`
	Points    int    `gorm:"not null" json:"points" dynamodbav:"points"`
	Label     string `gorm:"type:text" json:"label" dynamodbav:"label"`
	NbPlayers int    `gorm:"not null;default:1" json:"nbPlayers" dynamodbav:"nbPlayers"`
	Available int    `gorm:"not null;check:available >= 0" json:"available" dynamodbav:"available"`
	CreatedAt int64  `gorm:"autoCreateTime:milli" json:"createdAt" dynamodbav:"createdAt"`
	ClosingAt int64  `gorm:"index" json:"closingAt" dynamodbav:"closingAt"`
}

func (Code) TableName() string { return "codes" }

// Closed reports whether the code stopped accepting redemptions at nowMillis.
func (c Code) Closed(nowMillis int64) bool {
	return c.ClosingAt < nowMillis
}
