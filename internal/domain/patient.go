package domain

import "time"

type Patient struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id"`
	Name      string    `json:"name" gorm:"column:name"`
	Phone     string    `json:"phone" gorm:"column:phone;uniqueIndex"`
	Email     string    `json:"email,omitempty" gorm:"column:email"`
	Age       int       `json:"age,omitempty" gorm:"column:age"`
	Gender    string    `json:"gender,omitempty" gorm:"column:gender"`
	Address   string    `json:"address,omitempty" gorm:"column:address;type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Patient) TableName() string { return "patients" }
