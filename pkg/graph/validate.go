package graph

import (
	"fmt"

	"github.com/dukex/fluxo/pkg/models"
	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate checks the save-time invariants of a workflow definition and
// returns one human-readable message per violation, in node order.
func Validate(def models.Definition) []string {
	var (
		messages []string
		triggers int
	)

	for _, node := range def.Nodes {
		name := displayName(node)

		if !node.Type.Known() {
			messages = append(messages, fmt.Sprintf("Nó %q: tipo desconhecido %q", name, node.Type))

			continue
		}

		switch data := node.Data.(type) {
		case *models.TriggerData:
			triggers++

			if data.TriggerType == models.TriggerScheduled {
				if !models.HasText(data.Schedule) {
					messages = append(messages, fmt.Sprintf("Gatilho %q: informe a agenda (expressão cron)", name))
				} else if _, err := scheduleParser.Parse(data.Schedule); err != nil {
					messages = append(messages, fmt.Sprintf("Gatilho %q: agenda inválida %q", name, data.Schedule))
				}
			}
		case *models.TaskData:
			if !models.HasText(data.TaskTitle) {
				messages = append(messages, fmt.Sprintf("Tarefa %q: informe o título da tarefa", name))
			}

			if data.AssignedTo == nil {
				messages = append(messages, fmt.Sprintf("Tarefa %q: defina um responsável", name))
			}
		case *models.NotificationData:
			if !models.HasText(data.NotificationTitle) {
				messages = append(messages, fmt.Sprintf("Notificação %q: informe o título", name))
			}

			if !models.HasText(data.NotificationMessage) {
				messages = append(messages, fmt.Sprintf("Notificação %q: informe a mensagem", name))
			}
		case nil:
			if node.Type == models.NodeTypeTrigger {
				triggers++
			}

			if node.Type == models.NodeTypeTask {
				messages = append(messages, fmt.Sprintf("Tarefa %q: informe o título da tarefa", name))
				messages = append(messages, fmt.Sprintf("Tarefa %q: defina um responsável", name))
			}

			if node.Type == models.NodeTypeNotification {
				messages = append(messages, fmt.Sprintf("Notificação %q: informe o título", name))
				messages = append(messages, fmt.Sprintf("Notificação %q: informe a mensagem", name))
			}
		}
	}

	if triggers == 0 {
		messages = append([]string{"O fluxo precisa de pelo menos um nó de início (trigger)"}, messages...)
	}

	return messages
}

func displayName(node models.WorkflowNode) string {
	if label := node.Label(); models.HasText(label) {
		return label
	}

	return node.ID
}
