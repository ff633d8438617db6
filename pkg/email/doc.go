// Package email sends transactional messages such as the welcome mail a user
// receives after registering.
//
// Two EmailSender implementations are provided. The Postmark client delivers
// through the Postmark API; DevSender writes every message to a directory as
// an HTML body and a JSON envelope. New picks Postmark when both tokens are
// configured and DevSender otherwise:
//
//	sender, err := email.New(cfg)
//	msg, err := email.Welcome("bob@dylan.com")
//	err = sender.SendEmail(ctx, msg)
//
// Parameters are validated before any provider call; failures wrap
// ErrInvalidParams, ErrInvalidConfig or ErrFailedToSendEmail.
package email
