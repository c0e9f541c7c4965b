package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	participationDto "guildku_backend/internals/features/participations/dto"
	"guildku_backend/internals/features/parses/dto"
	"guildku_backend/internals/features/parses/service"
	helper "guildku_backend/internals/helpers"
)

type ParseController struct {
	DB        *gorm.DB
	Tracker   *service.TrackerService
	Assembler *service.AssemblerService
}

func NewParseController(db *gorm.DB) *ParseController {
	return &ParseController{
		DB:        db,
		Tracker:   service.NewTrackerService(db),
		Assembler: service.NewAssemblerService(db),
	}
}

/* ===================== CREATE ===================== */
// POST /sessions/:id/parses (multipart: screenshots[] + workflow_url? + workflow_api_key?)
func (ctrl *ParseController) Create(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload multipart tidak valid")
	}
	files := form.File["screenshots"]
	if len(files) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Minimal satu screenshot")
	}

	uploads := make([]service.UploadedScreenshot, 0, len(files))
	for _, fh := range files {
		url, data, err := helper.UploadScreenshot("parses", fh)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Gagal memproses screenshot: "+err.Error())
		}
		uploads = append(uploads, service.UploadedScreenshot{
			URL:      url,
			Mime:     "image/webp",
			Filename: fh.Filename,
			Data:     data,
		})
	}

	// URL workflow bisa di-override per request; default dari env
	client := service.NewWorkflowClient(c.FormValue("workflow_url"), c.FormValue("workflow_api_key"))

	jobs, err := ctrl.Tracker.CreateJobs(sessionID, uploads, client)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	out := make([]dto.ParseJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.FromParseJobModel(j, nil))
	}
	return helper.JsonCreated(c, "Parse jobs berhasil dibuat", out)
}

/* ===================== LIST ===================== */
// GET /sessions/:id/parses?status=
func (ctrl *ParseController) ListBySession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID session tidak valid")
	}

	var filter dto.FilterParseJobRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	if err := validator.New().Struct(filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	jobs, total, err := ctrl.Tracker.List(sessionID, filter, paging.Limit, paging.Offset)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil parse jobs")
	}

	out := make([]dto.ParseJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.FromParseJobModel(j, service.DecodePairs(j.ParseJobData)))
	}
	return helper.JsonList(c, "ok", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

/* ===================== CANCEL ===================== */
// POST /parses/:id/cancel
func (ctrl *ParseController) Cancel(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID parse job tidak valid")
	}

	job, err := ctrl.Tracker.Cancel(jobID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromParseJobModel(job, service.DecodePairs(job.ParseJobData)))
}

/* ===================== CALLBACK (webhook) ===================== */
// POST /parses/callback — dipanggil workflow eksternal, tanpa JWT
func (ctrl *ParseController) Callback(c *fiber.Ctx) error {
	var req dto.ParseCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	job, err := ctrl.Tracker.ApplyExternalUpdate(req.ParseJobID, req.Status, req.Data, req.Error)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", dto.FromParseJobModel(job, service.DecodePairs(job.ParseJobData)))
}

/* ===================== RECONCILE ===================== */
// GET /parses/:id/reconcile — preview baris hasil rakitan satu job
func (ctrl *ParseController) ReconcilePreview(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID parse job tidak valid")
	}

	job, rows, err := ctrl.Assembler.Assemble(jobID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "ok", service.ToResponse(job, rows))
}

// POST /parses/:id/reconcile — commit baris rakitan ke ledger
func (ctrl *ParseController) ReconcileCommit(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID parse job tidak valid")
	}

	actor, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.ReconcileCommitRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	recs, unresolved, err := ctrl.Assembler.Commit(jobID, req.Overrides, req.Removals, actor)
	if err != nil {
		if len(unresolved) > 0 {
			return helper.JsonValidationError(c, unresolved)
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Hasil parse berhasil di-commit ke ledger", participationDto.FromParticipationModels(recs))
}
