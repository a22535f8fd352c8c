package application

import "expvar"

// Published under /api/debug/vars.
var (
	otpIssued       = expvar.NewInt("otp_issued")
	signups         = expvar.NewInt("signups")
	logins          = expvar.NewInt("logins")
	passwordResets  = expvar.NewInt("password_resets")
	federatedLogins = expvar.NewInt("federated_logins")
	contactMessages = expvar.NewInt("contact_messages")
)
