package model

// ResultExport is the receipt of one class results export.
//
// swagger:model ResultExport
type ResultExport struct {
	UUIDBase
	ClassID     uint   `gorm:"index;not null" json:"classId"`
	ObjectName  string `gorm:"size:255;not null" json:"objectName"`
	URL         string `gorm:"size:512" json:"url"`
	Students    int    `json:"students"`
	RequestedBy uint   `gorm:"index" json:"requestedBy"`
}

func (ResultExport) TableName() string {
	return "result_exports"
}
