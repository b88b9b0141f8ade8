package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"scooter-rental-backend/internal/domain"
	"scooter-rental-backend/internal/logger"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendRentalConfirmation(ctx context.Context, email string, rental *domain.Rental) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Rental #%d confirmed", rental.ID))

	body := fmt.Sprintf(
		"Hello,\n\nYour scooter rental is confirmed.\n\nRental ID: %d\nScooter: %d\nPeriod: %s\nStart: %s\nCost: %.2f %s\n\nEnjoy the ride!",
		rental.ID, rental.ScooterID, rental.Period,
		rental.StartTime.Format("2006-01-02 15:04 MST"),
		rental.Cost, domain.DefaultCurrency,
	)
	m.SetBody("text/plain", body)

	logger.ExternalServiceCall("smtp", "send_rental_confirmation", "rental_id", rental.ID)
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	err := d.DialAndSend(m)
	logger.ExternalServiceResult("smtp", "send_rental_confirmation", err, "rental_id", rental.ID)
	if err != nil {
		return fmt.Errorf("failed to send rental confirmation: %w", err)
	}
	return nil
}

func (s *emailService) SendPaymentConfirmation(ctx context.Context, email string, payment *domain.Payment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Payment received for rental #%d", payment.RentalID))

	txn := ""
	if payment.TransactionID != nil {
		txn = *payment.TransactionID
	}
	body := fmt.Sprintf(
		"Hello,\n\nWe received your payment.\n\nAmount: %.2f %s\nRental ID: %d\nTransaction: %s\n\nThank you for riding with us.",
		payment.Amount, payment.Currency, payment.RentalID, txn,
	)
	m.SetBody("text/plain", body)

	logger.ExternalServiceCall("smtp", "send_payment_confirmation", "payment_id", payment.ID)
	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	err := d.DialAndSend(m)
	logger.ExternalServiceResult("smtp", "send_payment_confirmation", err, "payment_id", payment.ID)
	if err != nil {
		return fmt.Errorf("failed to send payment confirmation: %w", err)
	}
	return nil
}
