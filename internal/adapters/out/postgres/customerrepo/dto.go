package customerrepo

import (
	"dropoff/internal/core/domain/model/customer"
	"dropoff/internal/core/domain/model/kernel"
)

// CustomerDTO keeps the pickup code unique among customers that hold one;
// postgres allows any number of NULL codes.
type CustomerDTO struct {
	ID          string  `gorm:"type:varchar(64);primaryKey"`
	Name        string  `gorm:"type:varchar(255);not null"`
	MailID      string  `gorm:"column:mail_id;type:varchar(255);not null"`
	PackageID   string  `gorm:"type:varchar(64);not null;uniqueIndex"`
	ItemDetails string  `gorm:"type:text"`
	OTP         *int    `gorm:"column:otp;type:int;uniqueIndex"`
	RackTower   *string `gorm:"type:varchar(64)"`
	RackIndex   *int    `gorm:"type:int"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	dto := CustomerDTO{
		ID:          c.ID(),
		Name:        c.Name(),
		MailID:      c.Contact(),
		PackageID:   c.PackageID(),
		ItemDetails: c.ItemDetails(),
	}

	if code := c.Code(); code != nil {
		v := code.Int()
		dto.OTP = &v
	}

	if rack := c.Rack(); rack != nil {
		towerName, index := rack.Tower(), rack.Index()
		dto.RackTower = &towerName
		dto.RackIndex = &index
	}

	return dto
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	var code *customer.PickupCode
	if dto.OTP != nil {
		c, err := customer.NewPickupCode(*dto.OTP)
		if err != nil {
			return nil, err
		}
		code = &c
	}

	var rack *kernel.RackSlot
	if dto.RackTower != nil && dto.RackIndex != nil {
		slot, err := kernel.NewRackSlot(*dto.RackTower, *dto.RackIndex)
		if err != nil {
			return nil, err
		}
		rack = &slot
	}

	return customer.RestoreCustomer(dto.ID, dto.Name, dto.MailID, dto.PackageID, dto.ItemDetails, code, rack)
}
