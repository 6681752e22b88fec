package templates

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ardevpk/dub/internal/email"
	"github.com/ardevpk/dub/internal/email/components"
	"github.com/ardevpk/dub/internal/linkutil"
	"github.com/ardevpk/dub/internal/model"
)

const (
	// MaxErrorLinks caps the number of rows listed in the email.
	MaxErrorLinks = 20

	maxLinkDisplayLength = 40

	appURL = "https://app.dub.co"
)

// LinksImportErrorsProps is the input of the links import errors email.
type LinksImportErrorsProps struct {
	Email         string
	Provider      Provider
	ErrorLinks    []model.ImportErrorLink
	WorkspaceName string
	WorkspaceSlug string
}

// DefaultLinksImportErrorsProps returns the fixture used to preview the email.
func DefaultLinksImportErrorsProps() LinksImportErrorsProps {
	return LinksImportErrorsProps{
		Email:    "panic@thedis.co",
		Provider: ProviderCSV,
		ErrorLinks: []model.ImportErrorLink{
			{Domain: "dub.sh", Key: "123", Error: "Invalid URL"},
			{Domain: "dub.sh", Key: "456", Error: "Invalid URL"},
		},
		WorkspaceName: "Acme, Inc.",
		WorkspaceSlug: "acme",
	}
}

// LinksImportErrorsSubject is the subject line paired with LinksImportErrors.
func LinksImportErrorsSubject(provider Provider) string {
	return fmt.Sprintf("Some %s links failed to import", provider)
}

// LinksImportErrors composes the email listing links that failed to import.
// At most MaxErrorLinks rows are listed; the rest are summarized in a note.
func LinksImportErrors(props LinksImportErrorsProps) *email.Node {
	provider := props.Provider
	if provider == "" {
		provider = ProviderCSV
	}

	total := len(props.ErrorLinks)
	visible := props.ErrorLinks
	if total > MaxErrorLinks {
		visible = visible[:MaxErrorLinks]
	}

	title := fmt.Sprintf("Some %s links have failed to import", provider)

	return email.HTML(
		email.Head(),
		email.Preview(title),
		email.Body("mx-auto my-auto bg-white font-sans",
			email.Container("mx-auto my-10 max-w-[600px] rounded border border-solid border-neutral-200 px-10 py-5",
				components.Header(),
				email.Heading("mx-0 my-7 p-0 text-lg font-medium text-black", email.Str(title)),
				summary(total, provider, props.WorkspaceName, props.WorkspaceSlug),
				errorTable(visible),
				overflowNote(total-len(visible)),
				email.Text("text-sm leading-6 text-black",
					email.Str("Please reply to this email for additional help with your CSV import."),
				),
				components.Footer(props.Email),
			),
		),
	)
}

func summary(total int, provider Provider, workspaceName, workspaceSlug string) *email.Node {
	count := message.NewPrinter(language.AmericanEnglish).Sprintf("%d", total)

	return email.Text("text-sm leading-6 text-black",
		email.Str(fmt.Sprintf("The following %s links from %s failed to import into your Dub workspace, ", count, provider)),
		email.Link(appURL+"/"+workspaceSlug, "font-medium text-blue-600 no-underline",
			email.Str(workspaceName+"↗"),
		),
		email.Str("."),
	)
}

func errorTable(links []model.ImportErrorLink) *email.Node {
	children := make([]*email.Node, 0, 2*len(links)+1)
	children = append(children, email.Row("pb-2",
		email.Column("left", "text-sm text-neutral-500", email.Str("Link")),
		email.Column("right", "text-sm text-neutral-500", email.Str("Error")),
	))

	for i, l := range links {
		display := linkutil.Truncate(linkutil.ConstructLink(l.Domain, l.Key, true), maxLinkDisplayLength)
		children = append(children, email.Row("",
			email.Column("left", "text-sm font-medium", email.Str(display)),
			email.Column("right", "text-sm text-neutral-600", email.Str(l.Error)),
		))
		if i < len(links)-1 {
			children = append(children, email.Hr("my-2 w-full border border-neutral-200"))
		}
	}

	return email.Section("", children...)
}

func overflowNote(remaining int) *email.Node {
	if remaining <= 0 {
		return nil
	}
	return email.Section("my-8 text-center",
		email.Text("text-sm leading-6 text-black",
			email.Str(fmt.Sprintf("...and %d more errors", remaining)),
		),
	)
}
