package lease

type CreateLeaseReq struct {
	StudentID    int64  `json:"student_id" validate:"required,gt=0"`
	InstrumentID int64  `json:"instrument_id" validate:"required,gt=0"`
	EndDay       string `json:"end_day" validate:"required"`
}
