package utils

import (
	"finbook/config"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendEmail delivers one HTML email through SendGrid.
func sendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("SendGrid not configured, skipping email to %s", toEmail)
		return nil
	}

	from := mail.NewEmail("FinBook", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcomeEmail greets a freshly registered user. Best effort, runs in the
// background so registration never waits on the mail provider.
func SendWelcomeEmail(email, username string) {
	subject := "Welcome to FinBook"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to <strong>FinBook</strong>! Your account is ready.</p>
		<p>Add your accounts, record a few transactions and your dashboard will
		start tracking balances, budgets and your portfolio right away.</p>
	`, username)

	go sendEmail(email, username, subject, body)
}
