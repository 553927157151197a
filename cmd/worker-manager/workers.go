package main

import (
	awssdk "github.com/aws/aws-sdk-go-v2/aws"

	"crop-planner/internal/advisor"
	"crop-planner/internal/common/aws"
	"crop-planner/internal/common/camunda"
	"crop-planner/internal/common/config"
	"crop-planner/internal/common/logger"
	"crop-planner/internal/common/observability"

	afq "crop-planner/internal/workers/advisory/answer-farmer-question"
	scr "crop-planner/internal/workers/communication/send-crop-report"
	acr "crop-planner/internal/workers/planning/analyze-crop-risk"
	pcf "crop-planner/internal/workers/planning/plan-crop-finances"
	rc "crop-planner/internal/workers/planning/rank-crops"
	vfp "crop-planner/internal/workers/planning/validate-farmer-profile"
)

// taskTypes is the start order of the job workers.
var taskTypes = []string{
	vfp.TaskType,
	rc.TaskType,
	acr.TaskType,
	pcf.TaskType,
	scr.TaskType,
	afq.TaskType,
}

func newHandlers(cfg *config.Config, awsCfg awssdk.Config, log logger.Logger, obs *observability.Observability) map[string]camunda.JobHandler {
	return map[string]camunda.JobHandler{
		vfp.TaskType: vfp.NewHandler(vfp.LoadConfig(cfg), log, obs),
		rc.TaskType:  rc.NewHandler(rc.LoadConfig(cfg), log, obs),
		acr.TaskType: acr.NewHandler(acr.LoadConfig(cfg), log, obs),
		pcf.TaskType: pcf.NewHandler(pcf.LoadConfig(cfg), log, obs),
		scr.TaskType: scr.NewHandler(
			scr.LoadConfig(cfg),
			aws.NewSESClient(awsCfg),
			aws.NewSNSClient(awsCfg),
			log,
			obs,
		),
		afq.TaskType: afq.NewHandler(afq.LoadConfig(cfg), advisor.New(nil), log, obs),
	}
}
