package services

import (
	"fmt"
	"time"

	"github.com/open-ecommerce/helptext-sub000/internal/models"
)

// AnonymizedBody replaces stored message bodies when the anonymize setting is
// on. Only the audit record is affected; forwarded wire content is never
// anonymized.
const AnonymizedBody = "(content hidden by anonymization policy)"

// Reply texts sent back to the originator.
const (
	replyGeneric        = "Thank you for your message. We will contact you as soon as possible."
	replyWithCaseFormat = "Thank you for your message. We will contact you as soon as possible. Your case number is %d."
	replyHelperNoCase   = "Your message has no case number, we can't route it. Prefix it with case#<number># and resend."
)

// forwardPrefixFormat threads a forwarded contact message for the helper.
const forwardPrefixFormat = "From Case#%d# \n%s"

// Outbound is one message to hand to the transport provider.
type Outbound struct {
	To   string
	Body string
}

// Dispatch is the decision for one inbound message: which records to persist
// and which outbound legs to send. Persistence happens before any send.
type Dispatch struct {
	Persist   []*models.Message
	AutoReply *Outbound
	Forward   *Outbound
}

// DecideDispatch applies the routing policy for one resolved message. It is a
// pure function over identity, case context and settings; all I/O stays in
// the router facade.
func DecideDispatch(identity models.Identity, caseCtx models.CaseContext, phone, body string, settings *models.Settings, now time.Time) Dispatch {
	if identity.Kind == models.IdentityHelper {
		return decideHelper(caseCtx, phone, body, settings, now)
	}
	return decideContact(identity, caseCtx, phone, body, settings, now)
}

func decideHelper(caseCtx models.CaseContext, phone, body string, settings *models.Settings, now time.Time) Dispatch {
	if caseCtx.CaseID == 0 {
		// Usage error: a helper message must carry a case tag. Report it
		// back instead of dropping the message.
		return Dispatch{
			AutoReply: &Outbound{To: phone, Body: replyHelperNoCase},
		}
	}

	d := Dispatch{
		Persist: []*models.Message{
			storedMessage(phone, caseCtx.CaseID, settings.SenderTypeHelper, body, settings, now),
		},
		// The contact receives the raw text, without the tag stripped: what
		// the helper typed is what the contact reads.
		Forward: &Outbound{To: caseCtx.PhoneNumber, Body: body},
	}
	return d
}

func decideContact(identity models.Identity, caseCtx models.CaseContext, phone, body string, settings *models.Settings, now time.Time) Dispatch {
	if caseCtx.CaseID == 0 {
		// No thread to attach to (contact with no case, or a creation race
		// that resolved to nothing). Never silence: send the generic reply.
		return Dispatch{
			AutoReply: &Outbound{To: phone, Body: replyGeneric},
		}
	}

	d := Dispatch{
		Persist: []*models.Message{
			storedMessage(phone, caseCtx.CaseID, settings.SenderTypeContact, body, settings, now),
		},
	}

	switch {
	case caseCtx.Created:
		// Brand-new case. No forward yet; the assigned helper is
		// informational at this point.
		if settings.AutomaticResponse {
			reply := fmt.Sprintf(replyWithCaseFormat, caseCtx.CaseID)
			d.AutoReply = &Outbound{To: phone, Body: reply}
			d.Persist = append(d.Persist, storedMessage(
				phone, caseCtx.CaseID, models.SenderTypeAutomatedResponse, reply, settings, now,
			))
		}

	case caseCtx.IsOpen:
		d.Forward = &Outbound{
			To:   caseCtx.HelperPhone,
			Body: fmt.Sprintf(forwardPrefixFormat, caseCtx.CaseID, body),
		}

	default:
		// Closed case: informational reply only, no forwarded traffic.
		reply := fmt.Sprintf(replyWithCaseFormat, caseCtx.CaseID)
		d.AutoReply = &Outbound{To: phone, Body: reply}
		d.Persist = append(d.Persist, storedMessage(
			phone, caseCtx.CaseID, models.SenderTypeAutomatedResponse, reply, settings, now,
		))
	}

	// Open case assigned to a helper without a reachable phone: nothing to
	// forward to. The inbound message is still persisted for the thread.
	if d.Forward != nil && d.Forward.To == "" {
		d.Forward = nil
		d.AutoReply = &Outbound{To: phone, Body: replyGeneric}
	}

	return d
}

// storedMessage builds the audit record for one utterance. Anonymization is a
// write-only transform applied here and nowhere else.
func storedMessage(phone string, caseID, senderTypeID int64, body string, settings *models.Settings, now time.Time) *models.Message {
	stored := body
	if settings.Anonymize {
		stored = AnonymizedBody
	}

	return &models.Message{
		PhoneNumber:   phone,
		CaseID:        caseID,
		SenderTypeID:  senderTypeID,
		MessageTypeID: models.MessageTypeSMS,
		Body:          stored,
		Sent:          now.Unix(),
	}
}
