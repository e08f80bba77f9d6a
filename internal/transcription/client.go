// Package transcription is the external collaborator that turns an uploaded
// audio or document file into annotation text. The real service is not part
// of this repository; MockClient reproduces its contract, including the
// seconds-order processing delay.
package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

type FileKind string

const (
	FileKindAudio    FileKind = "audio"
	FileKindDocument FileKind = "document"
)

// Request carries an already-validated upload. Size and mime checks happen
// before a file reaches the transcriber; it does not re-validate.
type Request struct {
	FileBytes   []byte
	FileName    string
	Kind        FileKind
	AdmissionID string
	AuthorName  string
}

// Result is the annotation-shaped outcome of a transcription call.
type Result struct {
	Text         string
	AudioRef     *string
	DocumentRef  *string
	DocumentName *string
}

// Transcriber is the narrow interface the core consumes. Calls may take
// several seconds; implementations must honor context cancellation.
type Transcriber interface {
	Transcribe(ctx context.Context, req Request) (*Result, error)
}

// MockClient simulates the transcription backend: it waits a configured
// delay and returns a canned medical text selected by file name.
type MockClient struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewMockClient(delay time.Duration, logger *slog.Logger) *MockClient {
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &MockClient{
		delay:  delay,
		logger: logger,
	}
}

func (c *MockClient) Transcribe(ctx context.Context, req Request) (*Result, error) {
	c.logger.Info("transcription started",
		"admission_id", req.AdmissionID,
		"file", req.FileName,
		"kind", req.Kind,
		"size_bytes", len(req.FileBytes))

	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		c.logger.Info("transcription cancelled", "admission_id", req.AdmissionID)
		return nil, ctx.Err()
	}

	result := &Result{
		Text: cannedTranscript(req.FileName),
	}

	ref := fmt.Sprintf("upload://%s/%s", req.AdmissionID, req.FileName)
	switch req.Kind {
	case FileKindAudio:
		result.AudioRef = &ref
	case FileKindDocument:
		result.DocumentRef = &ref
		name := req.FileName
		result.DocumentName = &name
	}

	c.logger.Info("transcription completed",
		"admission_id", req.AdmissionID,
		"file", req.FileName)

	return result, nil
}

// cannedTranscript deterministically picks a sample transcript from the file
// name, so repeated uploads of the same file read the same.
func cannedTranscript(fileName string) string {
	sum := 0
	for _, ch := range fileName {
		sum += int(ch)
	}
	return sampleTranscripts[sum%len(sampleTranscripts)]
}

var sampleTranscripts = []string{
	"Paciente apresentou quadro de febre alta e tosse persistente. Exame físico revelou taquicardia e pressão arterial elevada. Solicitado exames complementares: hemograma completo, radiografia de tórax e eletrocardiograma. Iniciado tratamento com antibiótico de amplo espectro e antitérmico.",
	"Internação realizada para investigação de dor abdominal. Paciente relata dor há 3 dias, localizada em região epigástrica. Exame físico mostra sensibilidade à palpação. Solicitado ultrassonografia de abdome e exames laboratoriais. Mantido em observação.",
	"Paciente com histórico de hipertensão arterial e diabetes mellitus tipo 2. Apresentou descompensação glicêmica com glicemia de 350 mg/dL. Iniciado protocolo de insulina e monitoramento glicêmico a cada 2 horas. Orientado sobre dieta e medicações.",
	"Admissão para tratamento de pneumonia adquirida na comunidade. Exame físico: ausculta pulmonar com crepitações em base direita. Radiografia confirma infiltrado pulmonar. Iniciado antibioticoterapia empírica. Oxigenoterapia mantida conforme necessidade.",
	"Paciente idoso com quadro de confusão mental e desidratação. Exame neurológico sem déficits focais. Exames laboratoriais mostram desequilíbrio hidroeletrolítico. Iniciada reposição volêmica e correção de eletrólitos. Avaliação geriátrica solicitada.",
	"Internação para tratamento de insuficiência cardíaca descompensada. Paciente com dispneia aos esforços e edema de membros inferiores. Ecocardiograma mostra fração de ejeção reduzida. Otimizada medicação cardíaca e diuréticos.",
	"Paciente com suspeita de apendicite aguda. Dor em fossa ilíaca direita com sinais de irritação peritoneal. Exames laboratoriais mostram leucocitose. Cirurgia geral acionada para avaliação cirúrgica.",
	"Admissão para controle de crise asmática. Paciente com dispneia e sibilos à ausculta. Iniciado tratamento com broncodilatadores e corticoides. Oxigenoterapia mantida. Melhora progressiva do quadro respiratório.",
	"Paciente com insuficiência renal aguda. Creatinina elevada e débito urinário reduzido. Avaliação nefrológica solicitada. Iniciado protocolo de hidratação e monitoramento da função renal.",
	"Internação para investigação de anemia. Hemograma mostra hemoglobina de 7,5 g/dL. Solicitado estudo de ferro, vitamina B12 e ácido fólico. Transfusão sanguínea avaliada conforme necessidade.",
}
