package request

// SetApprovalRequest carries an approve/unapprove decision for a fund or
// scheme.
type SetApprovalRequest struct {
	Approved   bool   `json:"approved"`
	ApprovedBy string `json:"approvedBy"`
}
