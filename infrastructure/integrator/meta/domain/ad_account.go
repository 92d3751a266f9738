package metadomain

// AccountStatusActive é o account_status de contas ativas na Graph API
const AccountStatusActive = 1

type BusinessManager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	Currency      string `json:"currency"`
	TimezoneName  string `json:"timezone_name"`
}

func (a *AdAccount) IsActive() bool {
	return a.AccountStatus == AccountStatusActive
}
