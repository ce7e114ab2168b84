package request_models

type CancelSubscriptionRequest struct {
	SubscriptionID uint   `json:"subscriptionId" binding:"required"`
	ProductID      string `json:"productId" binding:"required"`
	UserID         string `json:"userId" binding:"required"`
	ProductName    string `json:"productName"`
	Comment        string `json:"comment"`
	CancelledType  string `json:"cancelledType"`
}

type RenewalChargeRequest struct {
	SubscriptionID uint   `json:"subscriptionId" binding:"required"`
	ProductID      string `json:"productId" binding:"required"`
	UserID         string `json:"userId" binding:"required"`
	ProductName    string `json:"productName"`
	Comment        string `json:"comment"`
}

type UpdateEndDateRequest struct {
	SubscriptionID uint   `json:"subscriptionId" binding:"required"`
	ProductID      string `json:"productId"`
	NewEndDate     string `json:"newEndDate" binding:"required"`
	Comment        string `json:"comment"`
}
