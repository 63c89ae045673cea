// utils/mailer.go
package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendAdminCodeEmail delivers a freshly generated admin code to its owner
// using SMTP2GO. Delivery is best-effort; the code is also returned once in
// the provisioning response.
func SendAdminCodeEmail(email, code string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	fromEmail := os.Getenv("FROM_EMAIL")

	// Use FROM_EMAIL as sender, if not available, fall back to SMTP_USER
	senderEmail := fromEmail
	if senderEmail == "" {
		senderEmail = smtpUser
	}

	if smtpHost == "" {
		smtpHost = "mail.smtp2go.com"
	}
	if smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("SMTP configuration is incomplete: check SMTP_USER and SMTP_PASS")
	}

	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if portNum, err := strconv.Atoi(portStr); err == nil && portNum > 0 {
			smtpPort = portNum
		}
	}

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your FundMe admin access code")
	m.SetBody("text/plain", fmt.Sprintf("Your admin access code is: %s\nUse it together with your email to sign in to the admin dashboard.", code))

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send admin code email: %v", err)
		return err
	}

	return nil
}
