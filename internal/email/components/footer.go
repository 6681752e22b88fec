// Package components holds layout blocks shared by email templates.
package components

import "github.com/ardevpk/dub/internal/email"

// Wordmark is the hosted Dub logo shown at the top of every email.
const Wordmark = "https://assets.dub.co/wordmark.png"

// Footer renders the closing fine print addressed to recipient.
func Footer(recipient string) *email.Node {
	return email.Fragment(
		email.Hr("mx-0 my-6 w-full border border-neutral-200"),
		email.Text("text-[12px] leading-6 text-neutral-500",
			email.Str("This email was intended for "),
			email.Span("text-black", email.Str(recipient)),
			email.Str(". If you were not expecting this email, you can ignore this email. "+
				"If you are concerned about your account's safety, please reply to this email to get in touch with us."),
		),
		email.Text("text-[12px] text-neutral-500",
			email.Str("Dub Technologies, Inc."),
			email.Br(),
			email.Str("2261 Market Street STE 5906"),
			email.Br(),
			email.Str("San Francisco, CA 94114"),
		),
	)
}

// Header renders the wordmark section.
func Header() *email.Node {
	return email.Section("mt-8", email.Img(Wordmark, "Dub", "32"))
}
