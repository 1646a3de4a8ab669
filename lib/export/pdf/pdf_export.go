package pdfexport

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"hr-pipeline-backend/models"
)

// DefaultOfferTemplate текст письма-предложения, html подмножество fpdf
const DefaultOfferTemplate = `<b>Objet : proposition d'embauche</b><br><br>
Madame, Monsieur {{.CandidateName}},<br><br>
Suite à nos échanges, nous avons le plaisir de vous proposer le poste de <b>{{.JobTitle}}</b>{{if .Department}} au sein du département {{.Department}}{{end}}.<br><br>
{{if .ProposedSalary}}Rémunération proposée : <b>{{.ProposedSalary}}</b><br>{{end}}
{{if .StartDate}}Date de prise de poste envisagée : <b>{{.StartDate}}</b><br>{{end}}
<br>Nous vous remercions de nous faire part de votre réponse dans les meilleurs délais.<br><br>
Veuillez agréer nos salutations distinguées.<br><br>
{{.RecruiterName}}<br>
<i>Service des ressources humaines</i><br>
<i>Le {{.SentDate}}</i>`

func GenerateOffer(pdfOfferTemplate string, tplData models.OfferTemplateData) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateOffer panic recover: %v", r)
		}
	}()
	if pdfOfferTemplate == "" {
		pdfOfferTemplate = DefaultOfferTemplate
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	// встроенные шрифты в cp1252, этого достаточно для французского текста
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	if err = putImg(pdf, tplData.Files.Logo); err != nil {
		return nil, err
	}
	if err = putImg(pdf, tplData.Files.Sign); err != nil {
		return nil, err
	}

	// лого и реквизиты
	if tplData.Files.Logo != nil {
		pdf.Image(tplData.Files.Logo.FileName, 10, 12, 30, 0, false, "", 0, "")
	}
	pdf.SetLeftMargin(45)
	_, lineHt := pdf.GetFontSize()
	htmlStr := fmt.Sprintf("<b>%v</b><br>", tplData.CompanyName) +
		fmt.Sprintf("%v<br>", tplData.CompanyAddress) +
		fmt.Sprintf("%v<br>", tplData.CompanyContact)
	html := pdf.HTMLBasicNew()
	html.Write(lineHt*1.5, tr(htmlStr))
	pdf.SetLeftMargin(10)

	posY := pdf.GetY()
	if posY < 50 {
		posY = 50
		pdf.SetY(posY)
	}

	tpl, err := template.New("offer_body").Parse(pdfOfferTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка разбора шаблона предложения")
	}
	buf := new(bytes.Buffer)
	if err = tpl.Execute(buf, tplData); err != nil {
		return nil, errors.Wrap(err, "ошибка заполнения шаблона предложения")
	}
	html = pdf.HTMLBasicNew()
	html.Write(lineHt*1.5, tr(buf.String()))

	if tplData.Files.Sign != nil {
		pageX, _, _ := pdf.PageSize(1)
		pdf.Image(tplData.Files.Sign.FileName, pageX-50, pdf.GetY()+10, 30, 0, false, "", 0, "")
	}

	buf = new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func putImg(pdf *fpdf.Fpdf, fileData *models.File) (err error) {
	if fileData == nil {
		return nil
	}
	options := fpdf.ImageOptions{
		ReadDpi: false,
	}
	options.ImageType, err = GetImgType(fileData.FileName)
	if err != nil {
		return err
	}
	pdf.RegisterImageOptionsReader(fileData.FileName, options, bytes.NewReader(fileData.Body))
	return pdf.Error()
}

func GetImgType(fileName string) (string, error) {
	pos := strings.LastIndex(fileName, ".")
	if pos < 0 {
		return "", errors.Errorf("не удалось получить расширение файла: %s", fileName)
	}
	return fileName[pos+1:], nil
}
