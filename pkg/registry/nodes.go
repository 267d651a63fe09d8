package registry

import "github.com/dukex/fluxo/pkg/models"

// RegisterDefaultNodes registers the built-in node types in palette order.
func (r *Registry) RegisterDefaultNodes() {
	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeTrigger,
		Label:       "Gatilho",
		Description: "Inicia o fluxo manualmente, por agenda, formulário, webhook ou registro",
		Icon:        "zap",
		Color:       "#22c55e",
		Category:    CategoryTrigger,
		defaults: func() models.NodeData {
			return &models.TriggerData{Label: "Início", TriggerType: models.TriggerManual}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeTask,
		Label:       "Tarefa",
		Description: "Atribui uma tarefa a um responsável",
		Icon:        "check-square",
		Color:       "#3b82f6",
		Category:    CategoryAction,
		defaults: func() models.NodeData {
			return &models.TaskData{Label: "Nova tarefa", Priority: models.PriorityMedium, DueInDays: 1}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeCondition,
		Label:       "Condição",
		Description: "Divide o fluxo conforme uma regra",
		Icon:        "git-branch",
		Color:       "#f59e0b",
		Category:    CategoryControl,
		Handles:     []string{models.HandleTrue, models.HandleFalse},
		defaults: func() models.NodeData {
			return &models.ConditionData{Label: "Condição", Operator: "equals"}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeDelay,
		Label:       "Aguardar",
		Description: "Pausa o fluxo por um período",
		Icon:        "clock",
		Color:       "#8b5cf6",
		Category:    CategoryControl,
		defaults: func() models.NodeData {
			return &models.DelayData{Label: "Aguardar", Duration: 1, Unit: models.DelayDays}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeNotification,
		Label:       "Notificação",
		Description: "Envia uma mensagem aos destinatários",
		Icon:        "bell",
		Color:       "#ec4899",
		Category:    CategoryAction,
		defaults: func() models.NodeData {
			return &models.NotificationData{Label: "Notificação", Channel: "in_app"}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeApproval,
		Label:       "Aprovação",
		Description: "Solicita a aprovação de um ou mais aprovadores",
		Icon:        "user-check",
		Color:       "#14b8a6",
		Category:    CategoryAction,
		Handles: []string{
			models.HandleApproved,
			models.HandleRejected,
			models.HandleNeedsCorrection,
			models.HandleExpired,
		},
		defaults: func() models.NodeData {
			return &models.ApprovalData{
				Label:            "Aprovação",
				ApprovalFormat:   models.ApprovalSingle,
				ExpirationHours:  72,
				ExpirationAction: "reject",
			}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeForm,
		Label:       "Formulário",
		Description: "Solicita o preenchimento de um formulário",
		Icon:        "file-text",
		Color:       "#0ea5e9",
		Category:    CategoryAction,
		defaults: func() models.NodeData {
			return &models.FormNodeData{Label: "Formulário"}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeWebhook,
		Label:       "Webhook",
		Description: "Chama um endpoint externo",
		Icon:        "globe",
		Color:       "#64748b",
		Category:    CategoryAction,
		defaults: func() models.NodeData {
			return &models.WebhookData{Label: "Webhook", Method: "POST"}
		},
	})

	r.RegisterNode(NodeDescriptor{
		Type:        models.NodeTypeLoop,
		Label:       "Repetição",
		Description: "Repete os passos para cada item de uma coleção",
		Icon:        "repeat",
		Color:       "#f97316",
		Category:    CategoryControl,
		Handles:     []string{models.HandleContinue, models.HandleExit},
		defaults: func() models.NodeData {
			return &models.LoopData{Label: "Repetição", MaxIterations: 10}
		},
	})
}
