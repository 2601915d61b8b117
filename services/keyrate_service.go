package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/peklos/nextbank/config"
	"github.com/sirupsen/logrus"
)

// KeyRateService получает ключевую ставку ЦБ через SOAP-сервис. Ставка
// используется как базовая для кредитов, когда клиент не указал свою.
type KeyRateService struct {
	url    string
	margin float64
	client *http.Client
	log    *logrus.Logger
}

// NewKeyRateService создает новый экземпляр KeyRateService
func NewKeyRateService(cfg *config.Config, log *logrus.Logger) *KeyRateService {
	return &KeyRateService{
		url:    cfg.CBR.URL,
		margin: cfg.CBR.Margin,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Margin возвращает маржу банка поверх ключевой ставки
func (s *KeyRateService) Margin() float64 {
	return s.margin
}

// CurrentRate возвращает актуальную ключевую ставку
func (s *KeyRateService) CurrentRate() (float64, error) {
	body, err := s.sendRequest(s.buildSOAPRequest())
	if err != nil {
		return 0, err
	}
	return s.parseXMLResponse(body)
}

// buildSOAPRequest формирует SOAP-запрос ключевой ставки за последний месяц
func (s *KeyRateService) buildSOAPRequest() string {
	fromDate := time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	toDate := time.Now().Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest отправляет SOAP-запрос
func (s *KeyRateService) sendRequest(soapRequest string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, s.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %v", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса к ЦБ: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("неожиданный статус ответа: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %v", err)
	}

	s.log.Debugf("Ответ ЦБ: %s", string(body))

	return body, nil
}

// parseXMLResponse извлекает последнюю ключевую ставку из XML-ответа
func (s *KeyRateService) parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("ошибка разбора XML: %v", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, fmt.Errorf("данные о ключевой ставке не найдены")
	}

	rateElement := krElements[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("элемент Rate не найден")
	}

	rate, err := strconv.ParseFloat(rateElement.Text(), 64)
	if err != nil {
		return 0, fmt.Errorf("неверный формат ставки: %v", err)
	}

	return rate, nil
}
