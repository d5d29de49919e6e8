package gateway

import (
	"math"
	"regexp"
	"strings"
)

// minRedemptionAmount is the partner's floor for SPEI redemptions, in units
// of the settlement currency.
const minRedemptionAmount = 100

var clabePattern = regexp.MustCompile(`^\d{18}$`)

var allowedOwnership = map[string]struct{}{
	"COMPANY_OWNED": {},
	"THIRD_PARTY":   {},
}

func validateRedemption(req RedemptionRequest) error {
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) {
		return validationErrorf("amount must be a finite number")
	}
	if req.Amount < minRedemptionAmount {
		return validationErrorf("amount must be at least %d", minRedemptionAmount)
	}
	if strings.TrimSpace(req.DestinationBankAccountID) == "" {
		return validationErrorf("destination_bank_account_id is required")
	}
	return nil
}

func validateWithdrawal(req WithdrawalRequest) error {
	if strings.TrimSpace(req.Address) == "" {
		return validationErrorf("address is required")
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return validationErrorf("amount must be a positive finite number")
	}
	if strings.TrimSpace(req.Asset) == "" {
		return validationErrorf("asset is required")
	}
	if strings.TrimSpace(req.Blockchain) == "" {
		return validationErrorf("blockchain is required")
	}
	// The compliance key must exist in the payload even when its value is
	// an empty object.
	if len(req.Compliance) == 0 {
		return validationErrorf("compliance is required, pass an empty object if there is nothing to declare")
	}
	return nil
}

func validateBankAccountRegistration(req RegisterBankAccountRequest) error {
	if strings.TrimSpace(req.Tag) == "" {
		return validationErrorf("tag is required")
	}
	if strings.TrimSpace(req.RecipientLegalName) == "" {
		return validationErrorf("recipient_legal_name is required")
	}
	if !clabePattern.MatchString(req.CLABE) {
		return validationErrorf("clabe must be exactly 18 digits")
	}
	if _, ok := allowedOwnership[req.Ownership]; !ok {
		return validationErrorf("ownership must be COMPANY_OWNED or THIRD_PARTY")
	}
	return nil
}

func validateMockDeposit(req MockDepositRequest) error {
	if strings.TrimSpace(req.Amount) == "" {
		return validationErrorf("amount is required")
	}
	if strings.TrimSpace(req.ReceiverCLABE) == "" {
		return validationErrorf("receiver_clabe is required")
	}
	if strings.TrimSpace(req.ReceiverName) == "" {
		return validationErrorf("receiver_name is required")
	}
	if strings.TrimSpace(req.SenderName) == "" {
		return validationErrorf("sender_name is required")
	}
	return nil
}
