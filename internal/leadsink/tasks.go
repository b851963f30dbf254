package leadsink

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TaskForwardLead delivers a booked lead to the external CRM.
const TaskForwardLead = "leadsink.forward_lead"

// ForwardLeadPayload is the task body, self-contained so the worker never
// needs database access.
type ForwardLeadPayload struct {
	LeadID         string `json:"leadId"`
	ConversationID string `json:"conversationId"`
	Service        string `json:"service"`
	Intent         string `json:"intent"`
	Detail         string `json:"detail,omitempty"`
	Timeline       string `json:"timeline,omitempty"`
	ScheduleNote   string `json:"scheduleNote,omitempty"`
	ZIP            string `json:"zip"`
}

// NewForwardLeadTask builds the asynq task for one lead.
func NewForwardLeadTask(payload ForwardLeadPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskForwardLead, data, asynq.MaxRetry(5)), nil
}

// ParseForwardLeadPayload decodes the task body.
func ParseForwardLeadPayload(task *asynq.Task) (ForwardLeadPayload, error) {
	var payload ForwardLeadPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ForwardLeadPayload{}, err
	}
	return payload, nil
}
