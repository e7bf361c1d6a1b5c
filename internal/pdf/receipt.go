package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	GenerateBookingReceipt(data ReceiptData) (string, error)
}

// ReceiptGenerator — реализация
type ReceiptGenerator struct {
	RootDir  string // корень хранения, например "./files"
	FontPath string // путь до TTF с кириллицей
	fontName string
}

type ReceiptData struct {
	BookingID  int
	StudioName string
	City       string
	Address    string
	ClientName string
	ClientMail string
	StartsAt   time.Time
	EndsAt     time.Time
	Amount     int64 // итог за бронь
	CreatedAt  time.Time
	Filename   string // имя файла (без путей); если пусто — сгенерируем
}

func NewReceiptGenerator(rootDir, fontPath string) *ReceiptGenerator {
	return &ReceiptGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReceiptGenerator) GenerateBookingReceipt(data ReceiptData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("booking_receipt_%d.pdf", data.BookingID)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Бронирование №%d", data.BookingID), false)
	pdf.SetAuthor("PhotoHub", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "ПОДТВЕРЖДЕНИЕ БРОНИРОВАНИЯ", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("№ PH-%06d  от  %s",
		data.BookingID,
		data.CreatedAt.Format("02.01.2006"),
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	// ===== Студия
	g.sectionTitle(pdf, "Студия")
	g.kvLine(pdf, "Название", data.StudioName)
	if data.City != "" {
		g.kvLine(pdf, "Город", data.City)
	}
	if data.Address != "" {
		g.kvLine(pdf, "Адрес", data.Address)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Клиент и время
	g.sectionTitle(pdf, "Бронирование")
	g.kvLine(pdf, "Клиент", data.ClientName)
	g.kvLine(pdf, "Email", data.ClientMail)
	g.kvLine(pdf, "Начало", data.StartsAt.Format("02.01.2006 15:04"))
	g.kvLine(pdf, "Окончание", data.EndsAt.Format("02.01.2006 15:04"))
	g.kvLine(pdf, "Стоимость", fmt.Sprintf("%d ₽", data.Amount))
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 11)
	note := "Пожалуйста, приходите за 10 минут до начала сессии. " +
		"Отмена бронирования возможна через личный кабинет PhotoHub."
	pdf.MultiCell(0, 6, note, "", "L", false)

	// ===== Нумерация страниц
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Стр. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

// ===== helpers =====

func (g *ReceiptGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReceiptGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReceiptGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReceiptGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // безопасность
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReceiptGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
