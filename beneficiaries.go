package luno

// Beneficiary is a saved bank account that withdrawals can be sent to.
type Beneficiary struct {
	ID                string `json:"id"`
	BankName          string `json:"bank_name"`
	BankRecipient     string `json:"bank_recipient"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountBranch string `json:"bank_account_branch"`
	BankAccountType   string `json:"bank_account_type"`
	BankCountry       string `json:"bank_country"`
	CreatedAt         int64  `json:"created_at"`
}

type listBeneficiariesResponse struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

// ListBeneficiaries returns the account's saved bank beneficiaries.
func (c *Client) ListBeneficiaries() ([]Beneficiary, error) {
	var resp listBeneficiariesResponse
	if err := c.get(c.urls.beneficiaries(), &resp); err != nil {
		return nil, err
	}
	return resp.Beneficiaries, nil
}
