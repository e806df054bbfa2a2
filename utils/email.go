package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// GroupReceiptData dữ liệu cho template email biên nhận nhóm
type GroupReceiptData struct {
	GroupCode    string
	LocationName string
	Seats        string
	MemberCount  int
	TotalAmount  float64
	DetailLink   string
}

// SendGroupReceiptEmail gửi biên nhận cho host sau settlement (async),
// đính kèm QR mã nhóm để đưa nhân viên khi cần hỗ trợ chỗ ngồi.
func SendGroupReceiptEmail(to string, data GroupReceiptData) {
	go func() {
		tmplPath := "templates/group_receipt.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Biên nhận nhóm #"+data.GroupCode)
		m.SetBody("text/html", body.String())

		qrBytes, err := GenerateQRCode(data.GroupCode, 400)
		if err != nil {
			log.Printf("Lỗi tạo QR: %v", err)
		} else {
			m.Embed("qr_group.png",
				gomail.SetCopyFunc(func(w io.Writer) error {
					_, err := w.Write(qrBytes)
					return err
				}),
				gomail.SetHeader(map[string][]string{
					"Content-Type":        {"image/png"},
					"Content-ID":          {"<qr_group_code>"},
					"Content-Disposition": {"inline"},
				}),
			)
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}
