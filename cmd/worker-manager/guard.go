package main

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"crop-planner/internal/common/camunda"
	"crop-planner/internal/common/errors"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/validation"
	"crop-planner/pkg/registry"
)

const profileField = "farmerProfile"

// guardedHandler rejects jobs whose variables do not match the input schema
// of the registry activity before the worker sees them.
type guardedHandler struct {
	next       camunda.JobHandler
	activity   registry.Activity
	errHandler *errors.ErrorHandler
}

// guardInputs wraps every handler the registry describes with an input
// schema. Without a registry the handlers are returned as they are.
func guardInputs(handlers map[string]camunda.JobHandler, reg *registry.ActivityRegistry, log logger.Logger) map[string]camunda.JobHandler {
	if reg == nil {
		return handlers
	}
	guarded := make(map[string]camunda.JobHandler, len(handlers))
	for taskType, h := range handlers {
		a, ok := reg.Find(taskType)
		if !ok || len(a.InputSchema) == 0 {
			guarded[taskType] = h
			continue
		}
		l := log.WithFields(map[string]interface{}{"taskType": taskType})
		guarded[taskType] = &guardedHandler{next: h, activity: a, errHandler: errors.NewErrorHandler(l)}
	}
	return guarded
}

func (g *guardedHandler) Handle(client worker.JobClient, job entities.Job) {
	if err := g.check(job); err != nil {
		g.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}
	g.next.Handle(client, job)
}

func (g *guardedHandler) check(job entities.Job) error {
	vars, err := job.GetVariablesAsMap()
	if err != nil {
		return errors.NewInvalidInputError("variables", err.Error())
	}
	res, err := g.activity.CheckInput(vars)
	if err != nil {
		return err
	}
	if res.Valid {
		return nil
	}

	field := res.Errors[0].Field
	if res.HasErrors(profileField) {
		field = profileField
	}
	return errors.NewInvalidInputError(field, joinMessages(res.GetErrorsForField(field))).
		WithMetadata("violations", res.GetErrorMessages())
}

func joinMessages(errs []validation.ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}
