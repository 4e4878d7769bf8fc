package ocr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/BaSui01/ocrflow/ocr/country"
)

// ============================================================
// 文档类型
// ============================================================

// Kind 标识要解析的文档类型, 每种类型对应供应商的一个固定端点.
type Kind string

const (
	KindReceipt   Kind = "receipt"
	KindInvoice   Kind = "invoice"
	KindIdentity  Kind = "identity"
	KindFinancial Kind = "financial"
)

// Kinds 返回全部支持的文档类型.
func Kinds() []Kind {
	return []Kind{KindReceipt, KindInvoice, KindIdentity, KindFinancial}
}

// ParseKind 将字符串解析为 Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unsupported document kind %q", s)
}

// Document 是一次上传的文档内容.
type Document struct {
	Name string    // 上传时使用的文件名
	Body io.Reader // 文档字节流, 由调用方负责关闭
}

// ============================================================
// 规范化记录
// ============================================================

// 所有标量字段都是指针且不带 omitempty: 供应商不支持的字段输出为显式 null.

// MerchantInfo 商户信息.
type MerchantInfo struct {
	Name    *string `json:"merchant_name"`
	Address *string `json:"merchant_address"`
	Phone   *string `json:"merchant_phone"`
	Email   *string `json:"merchant_email"`
	Fax     *string `json:"merchant_fax"`
	URL     *string `json:"merchant_website"`
	TaxID   *string `json:"merchant_tax_id"`
	Siret   *string `json:"merchant_siret"`
	Siren   *string `json:"merchant_siren"`
	VAT     *string `json:"vat_number"`
	GST     *string `json:"gst_number"`
	ABN     *string `json:"abn_number"`
	PAN     *string `json:"pan_number"`
}

// CustomerInfo 客户信息.
type CustomerInfo struct {
	Name              *string `json:"customer_name"`
	Address           *string `json:"customer_address"`
	Email             *string `json:"customer_email"`
	ID                *string `json:"customer_id"`
	TaxID             *string `json:"customer_tax_id"`
	MailingAddress    *string `json:"customer_mailing_address"`
	BillingAddress    *string `json:"customer_billing_address"`
	ShippingAddress   *string `json:"customer_shipping_address"`
	RemittanceAddress *string `json:"customer_remittance_address"`
	ServiceAddress    *string `json:"customer_service_address"`
	VAT               *string `json:"vat_number"`
	GST               *string `json:"gst_number"`
	ABN               *string `json:"abn_number"`
	PAN               *string `json:"pan_number"`
}

// TaxLine 一行税费.
type TaxLine struct {
	Amount *float64 `json:"taxes"`
	Rate   *float64 `json:"rate"`
}

// ItemLine 一行商品明细.
type ItemLine struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	Amount      *float64 `json:"amount"`
}

// Locale 币种与语言区域.
type Locale struct {
	Currency *string `json:"currency"`
	Language *string `json:"language"`
	Country  *string `json:"country"`
}

// PaymentInfo 支付信息.
type PaymentInfo struct {
	CardType   *string  `json:"card_type"`
	CardNumber *string  `json:"card_number"`
	Cash       *float64 `json:"cash"`
	Tip        *float64 `json:"tip"`
	Change     *float64 `json:"change"`
	Discount   *float64 `json:"discount"`
}

// BankInfo 收款银行信息.
type BankInfo struct {
	IBAN          *string `json:"iban"`
	Swift         *string `json:"swift"`
	AccountNumber *string `json:"account_number"`
	BSB           *string `json:"bsb"`
	SortCode      *string `json:"sort_code"`
}

// Barcode 小票上的条码.
type Barcode struct {
	Value *string `json:"value"`
	Type  *string `json:"type"`
}

// InvoiceRecord 规范化后的发票.
type InvoiceRecord struct {
	Number    *string      `json:"invoice_number"`
	Total     *float64     `json:"invoice_total"`
	Subtotal  *float64     `json:"invoice_subtotal"`
	Date      *time.Time   `json:"date"`
	DueDate   *time.Time   `json:"due_date"`
	Merchant  MerchantInfo `json:"merchant_information"`
	Customer  CustomerInfo `json:"customer_information"`
	Taxes     []TaxLine    `json:"taxes"`
	ItemLines []ItemLine   `json:"item_lines"`
	Locale    Locale       `json:"locale"`
	Payment   PaymentInfo  `json:"payment_information"`
	Bank      BankInfo     `json:"bank_informations"`
}

// ReceiptRecord 规范化后的小票.
type ReceiptRecord struct {
	Number    *string      `json:"invoice_number"`
	Total     *float64     `json:"invoice_total"`
	Subtotal  *float64     `json:"invoice_subtotal"`
	Date      *time.Time   `json:"date"`
	DueDate   *time.Time   `json:"due_date"`
	Merchant  MerchantInfo `json:"merchant_information"`
	Customer  CustomerInfo `json:"customer_information"`
	Taxes     []TaxLine    `json:"taxes"`
	ItemLines []ItemLine   `json:"item_lines"`
	Locale    Locale       `json:"locale"`
	Payment   PaymentInfo  `json:"payment_information"`
	Barcodes  []Barcode    `json:"barcodes"`
}

// IdentityField 带置信度的证件字段.
type IdentityField struct {
	Value      *string  `json:"value"`
	Confidence *float64 `json:"confidence"`
}

// IdentityRecord 规范化后的身份证件.
type IdentityRecord struct {
	LastName       IdentityField   `json:"last_name"`
	GivenNames     []IdentityField `json:"given_names"`
	BirthPlace     IdentityField   `json:"birth_place"`
	BirthDate      IdentityField   `json:"birth_date"`
	IssuanceDate   IdentityField   `json:"issuance_date"`
	ExpireDate     IdentityField   `json:"expire_date"`
	DocumentID     IdentityField   `json:"document_id"`
	IssuingState   IdentityField   `json:"issuing_state"`
	Address        IdentityField   `json:"address"`
	Age            IdentityField   `json:"age"`
	Country        country.Record  `json:"country"`
	DocumentType   IdentityField   `json:"document_type"`
	Gender         IdentityField   `json:"gender"`
	ImageID        []IdentityField `json:"image_id"`
	ImageSignature []IdentityField `json:"image_signature"`
	MRZ            IdentityField   `json:"mrz"`
	Nationality    IdentityField   `json:"nationality"`
}

// ReceiptParserResult 小票解析结果.
type ReceiptParserResult struct {
	ExtractedData []ReceiptRecord `json:"extracted_data"`
}

// InvoiceParserResult 发票解析结果.
type InvoiceParserResult struct {
	ExtractedData []InvoiceRecord `json:"extracted_data"`
}

// IdentityParserResult 证件解析结果.
type IdentityParserResult struct {
	ExtractedData []IdentityRecord `json:"extracted_data"`
}

// ============================================================
// 结果信封
// ============================================================

// ResultEnvelope 同时携带供应商原始响应与规范化结果, 构造后不可修改.
type ResultEnvelope[T any] struct {
	raw          json.RawMessage
	standardized T
}

// NewResultEnvelope 创建结果信封, raw 会被复制.
func NewResultEnvelope[T any](raw []byte, standardized T) *ResultEnvelope[T] {
	return &ResultEnvelope[T]{
		raw:          append(json.RawMessage(nil), raw...),
		standardized: standardized,
	}
}

// OriginalResponse 返回原始响应的副本.
func (e *ResultEnvelope[T]) OriginalResponse() json.RawMessage {
	return append(json.RawMessage(nil), e.raw...)
}

// Standardized 返回规范化结果.
func (e *ResultEnvelope[T]) Standardized() T {
	return e.standardized
}

// Envelope 是任意 ResultEnvelope 的类型擦除视图, 供 HTTP 层和 CLI 使用.
type Envelope interface {
	OriginalResponse() json.RawMessage
	StandardizedAny() any
}

// StandardizedAny 实现 Envelope.
func (e *ResultEnvelope[T]) StandardizedAny() any {
	return e.standardized
}

type envelopeJSON[T any] struct {
	OriginalResponse     json.RawMessage `json:"original_response"`
	StandardizedResponse T               `json:"standardized_response"`
}

// MarshalJSON 输出 {original_response, standardized_response}.
func (e *ResultEnvelope[T]) MarshalJSON() ([]byte, error) {
	raw := e.raw
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return json.Marshal(envelopeJSON[T]{
		OriginalResponse:     raw,
		StandardizedResponse: e.standardized,
	})
}

// ============================================================
// 供应商接口
// ============================================================

// Provider 定义文档解析供应商接口. 每个供应商是一个实现, 输出同一套规范化结构.
type Provider interface {
	// ParseReceipt 解析小票. language 形如 "fr-FR", 可为空.
	ParseReceipt(ctx context.Context, doc *Document, language string) (*ResultEnvelope[ReceiptParserResult], error)

	// ParseInvoice 解析发票.
	ParseInvoice(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error)

	// ParseFinancialDocument 解析发票或小票未知的财务单据, 输出发票结构.
	ParseFinancialDocument(ctx context.Context, doc *Document, language string) (*ResultEnvelope[InvoiceParserResult], error)

	// ParseIdentity 解析身份证件.
	ParseIdentity(ctx context.Context, doc *Document) (*ResultEnvelope[IdentityParserResult], error)

	// Name 返回供应商名称.
	Name() string
}
