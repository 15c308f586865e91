package analyzer

import (
	"context"
	"fmt"
	"strings"

	"keyword-insights/internal/common/config"
	"keyword-insights/internal/common/errors"
	"keyword-insights/internal/common/logger"
	"keyword-insights/internal/common/metrics"
	"keyword-insights/internal/models"
)

// EmailSender is satisfied by the SES wrapper.
type EmailSender interface {
	SendTextEmail(ctx context.Context, from string, to []string, subject, body string) error
}

// SMSPublisher is satisfied by the SNS wrapper.
type SMSPublisher interface {
	PublishToTopic(ctx context.Context, topicARN, message string) error
}

// Notifier delivers the run digest by email and, when the high-priority
// count crosses the configured threshold, an SMS alert.
type Notifier struct {
	cfg   config.NotificationConfig
	email EmailSender
	sms   SMSPublisher
	log   logger.Logger
}

func NewNotifier(cfg config.NotificationConfig, email EmailSender, sms SMSPublisher, log logger.Logger) *Notifier {
	return &Notifier{cfg: cfg, email: email, sms: sms, log: log}
}

// NotifyRun sends whatever transports are enabled. Email and SMS failures
// are independent; the first error is returned after both are attempted.
func (n *Notifier) NotifyRun(ctx context.Context, runID string, report *models.Report) error {
	var firstErr error

	if n.cfg.Email.Enabled && n.email != nil {
		subject := fmt.Sprintf("Keyword opportunities (%s): %d found, %d high priority",
			report.Channel, report.Summary.TotalOpportunities, report.Summary.ByPriority[models.PriorityHigh])
		body := BuildDigest(runID, report, n.cfg.Email.TopN)

		if err := n.email.SendTextEmail(ctx, n.cfg.Email.FromEmail, n.cfg.Email.ToEmails, subject, body); err != nil {
			firstErr = errors.NewNotificationSendFailedError("email", err)
			n.log.WithError(err).Error("digest email failed", map[string]interface{}{"runId": runID})
		} else {
			metrics.NotificationsSent.WithLabelValues("email").Inc()
		}
	}

	high := report.Summary.ByPriority[models.PriorityHigh]
	if n.cfg.SMS.Enabled && n.sms != nil && high >= n.cfg.SMS.PriorityThreshold {
		msg := fmt.Sprintf("keyword-insights: %d high-priority opportunities on %s (run %s)", high, report.Channel, runID)
		if err := n.sms.PublishToTopic(ctx, n.cfg.SMS.TopicARN, msg); err != nil {
			if firstErr == nil {
				firstErr = errors.NewNotificationSendFailedError("sms", err)
			}
			n.log.WithError(err).Error("priority SMS failed", map[string]interface{}{"runId": runID})
		} else {
			metrics.NotificationsSent.WithLabelValues("sms").Inc()
		}
	}

	return firstErr
}

// BuildDigest renders the plain-text run summary with the top entries.
func BuildDigest(runID string, report *models.Report, topN int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analysis run %s (channel: %s)\n\n", runID, report.Channel)
	fmt.Fprintf(&b, "Opportunities: %d\n", report.Summary.TotalOpportunities)
	fmt.Fprintf(&b, "  high: %d, medium: %d, low: %d\n",
		report.Summary.ByPriority[models.PriorityHigh],
		report.Summary.ByPriority[models.PriorityMedium],
		report.Summary.ByPriority[models.PriorityLow])
	fmt.Fprintf(&b, "Estimated additional clicks: %.0f\n", report.Summary.EstimatedAdditionalClicks)
	fmt.Fprintf(&b, "Dropped at ingestion: %d filtered, %d malformed\n\n", report.Rejected, report.Malformed)

	limit := topN
	if limit > len(report.Opportunities) {
		limit = len(report.Opportunities)
	}
	if limit > 0 {
		fmt.Fprintf(&b, "Top %d:\n", limit)
		for _, o := range report.Opportunities[:limit] {
			fmt.Fprintf(&b, "%3d. %-40s score %5.1f  %s/%s  +%.0f clicks\n",
				o.Rank, o.Query, o.OpportunityScore, o.OpportunityType, o.Priority, o.EstimatedAdditionalClicks)
		}
	}

	return b.String()
}
