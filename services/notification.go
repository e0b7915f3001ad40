package services

import (
	"fmt"
	"os"

	"registration-module/logger"
	"registration-module/models"
)

// SendPaymentConfirmation emails the registrant after a successful payment,
// attaching a PDF receipt. Best-effort: failures are logged, never returned
// to the callback path.
func SendPaymentConfirmation(mailer *Mailer, reg *models.Registration) {
	if !mailer.Enabled() {
		return
	}

	receiptPath, err := GenerateReceipt(reg)
	if err != nil {
		logger.Warn("Failed to generate receipt for %s: %v", reg.TxnID, err)
		receiptPath = ""
	}
	if receiptPath != "" {
		defer os.Remove(receiptPath)
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; border-radius: 5px; }
        .content { background-color: #f9f9f9; padding: 20px; margin-top: 20px; border-radius: 5px; }
        .payment-info { background-color: #e8f5e9; padding: 15px; margin: 15px 0; border-left: 4px solid #4CAF50; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>Payment Received</h2></div>
        <div class="content">
            <p>Dear <strong>%s</strong>,</p>
            <p>Your registration payment has been received successfully.</p>
            <div class="payment-info">
                <p><strong>Transaction ID:</strong> %s</p>
                <p><strong>Amount:</strong> %s</p>
            </div>
            <p>Your receipt is attached to this email.</p>
            <p>Best regards,<br/>ISML Team</p>
        </div>
    </div>
</body>
</html>
	`, reg.Name, reg.TxnID, reg.Amount)

	subject := fmt.Sprintf("Payment Confirmation - %s", reg.TxnID)

	var err2 error
	if receiptPath != "" {
		err2 = mailer.Send(reg.Email, subject, body, receiptPath)
	} else {
		err2 = mailer.Send(reg.Email, subject, body)
	}
	if err2 != nil {
		logger.Warn("Failed to send payment confirmation for %s: %v", reg.TxnID, err2)
	}
}
