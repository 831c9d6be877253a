package api

import "go.uber.org/fx"

var Module = fx.Module("api",
	fx.Provide(NewHealthHandlers),
	fx.Provide(NewAuthHandlers),
	fx.Provide(NewCommentHandlers),
	fx.Provide(NewKnowledgeBaseHandlers),
	fx.Provide(NewOrganizationHandlers),
)
