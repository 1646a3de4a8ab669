package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"hr-pipeline-backend/lib/utils/helpers"
	dashboardapimodels "hr-pipeline-backend/models/api/dashboard"
	dbmodels "hr-pipeline-backend/models/db"
)

type Provider interface {
	ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error)
	ExportDashboard(stats dashboardapimodels.DashboardStats) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance()
}

func NewInstance() Provider {
	return impl{}
}

type impl struct{}

var candidateHeaders = []string{"Nom complet", "Contacts", "Poste", "Département", "Source", "Expérience (ans)", "Salaire souhaité", "Demande de recrutement", "Avis RH", "Avis manager", "Statut", "Date de réception"}

func (i impl) ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)
	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, candidateHeaders, 22)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), row+len(list)); err != nil {
		return nil, errors.Wrap(err, "ошибка оформления таблицы в xlsx")
	}
	for _, item := range list {
		row++
		var requestTitle interface{}
		if item.HiringRequest != nil {
			requestTitle = item.HiringRequest.JobTitle
		}
		err = writeRow(f, sheet, row,
			item.GetFullName(),
			fmt.Sprintf("%v\r%v", item.Phone, item.Email),
			item.Position,
			item.Department,
			item.Source.ToHuman(),
			item.ExperienceYears,
			item.ExpectedSalary,
			requestTitle,
			item.HROpinion.ToHuman(),
			item.ManagerOpinion.ToHuman(),
			item.Status.ToHuman(),
			item.CreatedAt.Format(helpers.DateFormat),
		)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Candidats")
	return f.WriteToBuffer()
}

func (i impl) ExportDashboard(stats dashboardapimodels.DashboardStats) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer closeFile(f)

	sheet := "Sheet1"
	row, err := writeHeader(f, sheet, 0, []string{"Indicateur", "Valeur"}, 35)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	summary := [][]interface{}{
		{"Candidats", stats.TotalCandidates},
		{"Recrutés", stats.HiredCount},
		{"Taux de conversion, %", stats.ConversionRate},
		{"Coût total de recrutement", stats.TotalHiringCost},
		{"Statuts non reconnus", stats.UnknownStatusCount},
	}
	for _, item := range summary {
		row++
		if err = writeRow(f, sheet, row, item...); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования сводки в xlsx")
		}
	}
	f.SetSheetName(sheet, "Synthèse")

	statusRows := make([][]interface{}, 0, len(stats.CandidatesByStatus))
	for _, item := range stats.CandidatesByStatus {
		statusRows = append(statusRows, []interface{}{item.Label, item.Count})
	}
	if err = writeSheet(f, "Par statut", []string{"Statut", "Candidats"}, statusRows); err != nil {
		return nil, err
	}
	if err = writeSheet(f, "Par département", []string{"Département", "Candidats"}, groupRows(stats.CandidatesByDept)); err != nil {
		return nil, err
	}
	if err = writeSheet(f, "Par source", []string{"Source", "Candidats"}, groupRows(stats.CandidatesBySource)); err != nil {
		return nil, err
	}
	requestRows := make([][]interface{}, 0, len(stats.HiringRequestsByStatus))
	for _, item := range stats.HiringRequestsByStatus {
		requestRows = append(requestRows, []interface{}{item.Label, item.Count})
	}
	if err = writeSheet(f, "Demandes", []string{"Statut", "Demandes"}, requestRows); err != nil {
		return nil, err
	}
	return f.WriteToBuffer()
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.Wrapf(err, "ошибка создания листа %s", sheet)
	}
	row, err := writeHeader(f, sheet, 0, headers, 30)
	if err != nil {
		return errors.Wrapf(err, "ошибка формирования заголовка листа %s", sheet)
	}
	if err = applyDataCellStyle(f, sheet, 1, row+1, len(headers), row+len(rows)); err != nil {
		return errors.Wrapf(err, "ошибка оформления листа %s", sheet)
	}
	for _, item := range rows {
		row++
		if err = writeRow(f, sheet, row, item...); err != nil {
			return errors.Wrapf(err, "ошибка заполнения листа %s", sheet)
		}
	}
	return nil
}

func groupRows(list []dashboardapimodels.GroupCount) [][]interface{} {
	result := make([][]interface{}, 0, len(list))
	for _, item := range list {
		result = append(result, []interface{}{item.Name, item.Count})
	}
	return result
}

func closeFile(f *excelize.File) {
	if err := f.Close(); err != nil {
		log.WithError(err).Error("ошибка закрытия файла")
	}
}
