package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// EventType names a campaign event consumed by the off-chain indexer.
type EventType string

const (
	EventCampaignCreated   EventType = "campaign.created"
	EventCampaignFunded    EventType = "campaign.funded"
	EventMetricsUpdated    EventType = "campaign.metrics_updated"
	EventMilestonePaid     EventType = "campaign.milestone_paid"
	EventCampaignCompleted EventType = "campaign.completed"
	EventCampaignExpired   EventType = "campaign.expired"
	EventCampaignCancelled EventType = "campaign.cancelled"
	EventCampaignClosed    EventType = "campaign.closed"
)

// Event is an append-only record of a committed transition.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Type       EventType         `json:"type"`
	Campaign   Address           `json:"campaign"`
	Attributes map[string]string `json:"attributes"`
	CreatedAt  time.Time         `json:"created_at"`
}

func newEvent(typ EventType, c *Campaign, now time.Time) Event {
	attrs := map[string]string{
		"status":      string(c.Status),
		"influencer":  c.Influencer.Hex(),
		"brand":       c.Brand.Hex(),
		"paid_amount": strconv.FormatUint(c.PaidAmount, 10),
	}
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		Campaign:   c.Address,
		Attributes: attrs,
		CreatedAt:  now.UTC(),
	}
}

// TransitionEvents returns the events describing t applied to c. c must be
// the record after the transition.
func TransitionEvents(c *Campaign, t Transition, now time.Time) []Event {
	var out []Event
	switch t.Operation {
	case OpCreate:
		e := newEvent(EventCampaignCreated, c, now)
		e.Attributes["name"] = c.Name
		e.Attributes["oracle"] = c.Oracle.Hex()
		e.Attributes["total_deposit"] = strconv.FormatUint(c.TotalDeposit, 10)
		e.Attributes["deadline"] = strconv.FormatInt(c.Deadline.Unix(), 10)
		out = append(out, e)
	case OpFund:
		e := newEvent(EventCampaignFunded, c, now)
		e.Attributes["vault"] = c.Vault.Hex()
		e.Attributes["total_deposit"] = strconv.FormatUint(c.TotalDeposit, 10)
		out = append(out, e)
	case OpMetrics:
		e := newEvent(EventMetricsUpdated, c, now)
		e.Attributes["likes"] = strconv.FormatUint(c.Current.Likes, 10)
		e.Attributes["comments"] = strconv.FormatUint(c.Current.Comments, 10)
		e.Attributes["views"] = strconv.FormatUint(c.Current.Views, 10)
		e.Attributes["shares"] = strconv.FormatUint(c.Current.Shares, 10)
		e.Attributes["progress_bps"] = strconv.FormatUint(c.ProgressBasisPoints(), 10)
		out = append(out, e)
		for _, p := range t.Payouts {
			pe := newEvent(EventMilestonePaid, c, now)
			pe.Attributes["milestone"] = strconv.Itoa(p.Index)
			pe.Attributes["amount"] = strconv.FormatUint(p.Amount, 10)
			out = append(out, pe)
		}
		if t.To == StatusCompleted {
			out = append(out, newEvent(EventCampaignCompleted, c, now))
		}
	case OpReclaim:
		out = append(out, newEvent(EventCampaignExpired, c, now))
	case OpCancel:
		out = append(out, newEvent(EventCampaignCancelled, c, now))
	}
	if t.Closed {
		e := newEvent(EventCampaignClosed, c, now)
		e.Attributes["beneficiary"] = t.Beneficiary.Hex()
		out = append(out, e)
	}
	return out
}
