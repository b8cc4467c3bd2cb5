package mail

import (
	"fmt"
	"strings"
	"time"
)

// VerificationMessage builds the account verification email. The link embeds
// a single-use token and expires after the email verification window.
func VerificationMessage(to, name, baseURL, token string) Message {
	link := strings.TrimRight(baseURL, "/") + "/api/auth/verify-email/" + token

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Welcome to TailoRent! Please verify your email address by clicking the link below:\n\n"+
			"%s\n\n"+
			"This link expires in 24 hours. If you did not create an account, you can ignore this email.\n\n"+
			"The TailoRent Team",
		name, link)

	return Message{
		To:      to,
		Subject: "Verify your TailoRent account",
		Body:    body,
	}
}

// WelcomeMessage builds the post-verification welcome email.
func WelcomeMessage(to, name string) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your email has been verified and your TailoRent account is ready.\n"+
			"Browse tailors, fashion designers and vendors, or list your own services.\n\n"+
			"The TailoRent Team",
		name)

	return Message{
		To:      to,
		Subject: "Welcome to TailoRent",
		Body:    body,
	}
}

// BookingDecisionMessage builds the email telling a customer their booking
// was accepted or rejected.
func BookingDecisionMessage(to, name, serviceType string, date time.Time, status string) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking for %s on %s has been %s.\n\n"+
			"The TailoRent Team",
		name, serviceType, date.Format("January 2, 2006"), status)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Your booking has been %s", status),
		Body:    body,
	}
}

// BookingRequestMessage builds the email telling a professional a new booking
// is waiting for their decision.
func BookingRequestMessage(to, name, customerName, serviceType string, date time.Time) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"%s has requested a booking for %s on %s.\n"+
			"Log in to accept or reject the request.\n\n"+
			"The TailoRent Team",
		name, customerName, serviceType, date.Format("January 2, 2006"))

	return Message{
		To:      to,
		Subject: "New booking request",
		Body:    body,
	}
}
