package models

// Redemption is written each time a user consumes one unit of a Code.
type Redemption struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id" dynamodbav:"id"`
	Pseudo    string `gorm:"index;not null" json:"pseudo" dynamodbav:"pseudo"`
	Code      string `gorm:"index;not null" json:"code" dynamodbav:"code"`
	Points    int    `json:"points" dynamodbav:"points"`
	CreatedAt int64  `gorm:"index;autoCreateTime:milli" json:"createdAt" dynamodbav:"createdAt"`
}

func (Redemption) TableName() string { return "scores_stats" }

// ScoreEvent is one player's row of a batch scoring occasion. All rows of a
// batch share Code, Label, Points and CreatedAt.
type ScoreEvent struct {
	ID        string `gorm:"primaryKey;type:uuid" json:"id" dynamodbav:"id"`
	Pseudo    string `gorm:"index;not null" json:"pseudo" dynamodbav:"pseudo"`
	Points    int    `json:"points" dynamodbav:"points"`
	Label     string `gorm:"type:text" json:"label" dynamodbav:"label"`
	Code      string `gorm:"index;not null" json:"code" dynamodbav:"code"`
	CreatedAt int64  `gorm:"index;autoCreateTime:milli" json:"createdAt" dynamodbav:"createdAt"`
}

func (ScoreEvent) TableName() string { return "scores" }
