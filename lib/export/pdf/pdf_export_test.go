package pdfexport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/models"
)

func TestGenerateOffer(t *testing.T) {
	t.Run(`default template`, func(t *testing.T) {
		body, err := GenerateOffer("", models.OfferTemplateData{
			CandidateName:  "Amine Benali",
			JobTitle:       "Technicien de maintenance",
			Department:     "Production",
			ProposedSalary: "85 000,00",
			StartDate:      "01/04/2026",
			SentDate:       "02/03/2026",
			RecruiterName:  "Équipe RH",
			CompanyName:    "Usine",
		})
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(body, []byte("%PDF")))
	})
	t.Run(`broken template`, func(t *testing.T) {
		_, err := GenerateOffer("{{.Unknown", models.OfferTemplateData{})
		require.Error(t, err)
	})
	t.Run(`image type`, func(t *testing.T) {
		imgType, err := GetImgType("logo.png")
		require.NoError(t, err)
		require.Equal(t, "png", imgType)
		_, err = GetImgType("logo")
		require.Error(t, err)
	})
}
