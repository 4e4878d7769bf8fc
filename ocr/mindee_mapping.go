package ocr

import (
	"fmt"
	"time"

	"github.com/BaSui01/ocrflow/ocr/country"
	"github.com/BaSui01/ocrflow/ocr/fields"
	"github.com/BaSui01/ocrflow/types"
)

// 映射函数只依赖原始响应字节, 不做任何 I/O, 同一输入总是得到相同输出.

// MapMindeeReceipt 将 Mindee 小票响应映射为规范化结果.
func MapMindeeReceipt(raw []byte) (*ResultEnvelope[ReceiptParserResult], error) {
	root, err := parseRaw(raw)
	if err != nil {
		return nil, err
	}
	rec, err := mapReceipt(prediction(root))
	if err != nil {
		return nil, err
	}
	return NewResultEnvelope(raw, ReceiptParserResult{ExtractedData: []ReceiptRecord{rec}}), nil
}

// MapMindeeInvoice 将 Mindee 发票响应映射为规范化结果.
func MapMindeeInvoice(raw []byte) (*ResultEnvelope[InvoiceParserResult], error) {
	root, err := parseRaw(raw)
	if err != nil {
		return nil, err
	}
	rec, err := mapInvoice(prediction(root))
	if err != nil {
		return nil, err
	}
	return NewResultEnvelope(raw, InvoiceParserResult{ExtractedData: []InvoiceRecord{rec}}), nil
}

// MapMindeeFinancial 将 Mindee 财务单据响应映射为发票结构.
func MapMindeeFinancial(raw []byte) (*ResultEnvelope[InvoiceParserResult], error) {
	root, err := parseRaw(raw)
	if err != nil {
		return nil, err
	}
	rec, err := mapFinancial(prediction(root))
	if err != nil {
		return nil, err
	}
	return NewResultEnvelope(raw, InvoiceParserResult{ExtractedData: []InvoiceRecord{rec}}), nil
}

// MapMindeeIdentity 将 Mindee 护照响应映射为规范化结果.
func MapMindeeIdentity(raw []byte) (*ResultEnvelope[IdentityParserResult], error) {
	root, err := parseRaw(raw)
	if err != nil {
		return nil, err
	}
	rec, err := mapIdentity(prediction(root))
	if err != nil {
		return nil, err
	}
	return NewResultEnvelope(raw, IdentityParserResult{ExtractedData: []IdentityRecord{rec}}), nil
}

func parseRaw(raw []byte) (fields.Tree, error) {
	root, err := fields.Parse(raw)
	if err != nil {
		return fields.Tree{}, types.NewInvalidRequestError("mindee response is not valid JSON").WithCause(err)
	}
	return root, nil
}

// ============================================================
// 字段提取
// ============================================================

// extractor 记录第一个转换错误, 之后的提取全部短路返回 nil.
type extractor struct {
	err error
}

// fail 把字段路径写进 *types.Error 的 Message, 客户端才能看到是哪个字段转换失败.
func (x *extractor) fail(field string, err error) {
	if x.err != nil || err == nil {
		return
	}
	if e, ok := types.AsError(err); ok {
		tagged := *e
		tagged.Message = field + ": " + e.Message
		x.err = &tagged
		return
	}
	x.err = fmt.Errorf("%s: %w", field, err)
}

// value 读取 {"value": ...} 形式的字段.
func value(t fields.Tree, key string) *string {
	return fields.SafeGet(t, key, "value").String()
}

func (x *extractor) number(t fields.Tree, field string) *float64 {
	if x.err != nil {
		return nil
	}
	v, err := t.Float()
	x.fail(field, err)
	return v
}

func (x *extractor) valueNumber(t fields.Tree, key string) *float64 {
	return x.number(fields.SafeGet(t, key, "value"), key)
}

func (x *extractor) datetime(t fields.Tree, dateKey, timeKey string) *time.Time {
	if x.err != nil {
		return nil
	}
	var clock *string
	if timeKey != "" {
		clock = value(t, timeKey)
	}
	v, err := fields.CombineDateAndTime(value(t, dateKey), clock)
	x.fail(dateKey, err)
	return v
}

func (x *extractor) taxes(t fields.Tree) []TaxLine {
	items := t.Get("taxes").Array()
	out := make([]TaxLine, 0, len(items))
	for i, item := range items {
		out = append(out, TaxLine{
			Amount: x.number(item.Get("value"), fmt.Sprintf("taxes[%d].value", i)),
			Rate:   x.number(item.Get("rate"), fmt.Sprintf("taxes[%d].rate", i)),
		})
	}
	return out
}

func (x *extractor) lineItems(t fields.Tree) []ItemLine {
	items := t.Get("line_items").Array()
	out := make([]ItemLine, 0, len(items))
	for i, item := range items {
		out = append(out, ItemLine{
			Description: item.Get("description").String(),
			Quantity:    x.number(item.Get("quantity"), fmt.Sprintf("line_items[%d].quantity", i)),
			UnitPrice:   x.number(item.Get("unit_price"), fmt.Sprintf("line_items[%d].unit_price", i)),
			Amount:      x.number(item.Get("total_amount"), fmt.Sprintf("line_items[%d].total_amount", i)),
		})
	}
	return out
}

func (x *extractor) identity(t fields.Tree, key string) IdentityField {
	node := t.Get(key)
	return x.identityNode(node, key)
}

func (x *extractor) identityNode(node fields.Tree, field string) IdentityField {
	return IdentityField{
		Value:      node.Get("value").String(),
		Confidence: x.number(node.Get("confidence"), field+".confidence"),
	}
}

// ============================================================
// 各文档类型的映射
// ============================================================

func mapReceipt(pred fields.Tree) (ReceiptRecord, error) {
	var x extractor
	locale := pred.Get("locale")

	rec := ReceiptRecord{
		Total: x.valueNumber(pred, "total_amount"),
		Date:  x.datetime(pred, "date", "time"),
		Merchant: MerchantInfo{
			Name:    value(pred, "supplier_name"),
			Address: value(pred, "supplier_address"),
			Phone:   value(pred, "supplier_phone_number"),
		},
		Taxes:     x.taxes(pred),
		ItemLines: x.lineItems(pred),
		Locale: Locale{
			Currency: locale.Get("currency").String(),
			Language: locale.Get("language").String(),
			Country:  locale.Get("country").String(),
		},
		Barcodes: []Barcode{},
	}
	if x.err != nil {
		return ReceiptRecord{}, x.err
	}
	return rec, nil
}

func mapInvoice(pred fields.Tree) (InvoiceRecord, error) {
	var x extractor
	locale := pred.Get("locale")
	customerAddress := value(pred, "customer_address")

	rec := InvoiceRecord{
		Number:   value(pred, "invoice_number"),
		Total:    x.valueNumber(pred, "total_incl"),
		Subtotal: x.valueNumber(pred, "total_excl"),
		Date:     x.datetime(pred, "date", "time"),
		DueDate:  x.datetime(pred, "due_date", "due_time"),
		Merchant: MerchantInfo{
			Name:    value(pred, "supplier"),
			Address: value(pred, "supplier_address"),
		},
		Customer: CustomerInfo{
			Name:           value(pred, "customer"),
			Address:        customerAddress,
			MailingAddress: customerAddress,
		},
		Taxes:     x.taxes(pred),
		ItemLines: x.lineItems(pred),
		Locale: Locale{
			Currency: locale.Get("currency").String(),
			Language: locale.Get("language").String(),
		},
	}
	if x.err != nil {
		return InvoiceRecord{}, x.err
	}
	return rec, nil
}

func mapFinancial(pred fields.Tree) (InvoiceRecord, error) {
	var x extractor
	locale := pred.Get("locale")

	rec := InvoiceRecord{
		Number:   value(pred, "invoice_number"),
		Total:    x.valueNumber(pred, "total_amount"),
		Subtotal: x.valueNumber(pred, "total_net"),
		Date:     x.datetime(pred, "date", "time"),
		DueDate:  x.datetime(pred, "due_date", ""),
		Merchant: MerchantInfo{
			Name:    value(pred, "supplier_name"),
			Address: value(pred, "supplier_address"),
			Phone:   value(pred, "supplier_phone_number"),
		},
		Customer: CustomerInfo{
			Name:    value(pred, "customer_name"),
			Address: value(pred, "customer_address"),
		},
		Taxes:     x.taxes(pred),
		ItemLines: x.lineItems(pred),
		Locale: Locale{
			Currency: locale.Get("currency").String(),
			Language: locale.Get("language").String(),
			Country:  locale.Get("country").String(),
		},
	}
	if x.err != nil {
		return InvoiceRecord{}, x.err
	}
	return rec, nil
}

func mapIdentity(pred fields.Tree) (IdentityRecord, error) {
	var x extractor

	names := pred.Get("given_names").Array()
	givenNames := make([]IdentityField, 0, len(names))
	for i, n := range names {
		givenNames = append(givenNames, x.identityNode(n, fmt.Sprintf("given_names[%d]", i)))
	}

	rec := IdentityRecord{
		LastName:       x.identity(pred, "surname"),
		GivenNames:     givenNames,
		BirthPlace:     x.identity(pred, "birth_place"),
		BirthDate:      x.identity(pred, "birth_date"),
		IssuanceDate:   x.identity(pred, "issuance_date"),
		ExpireDate:     x.identity(pred, "expiry_date"),
		DocumentID:     x.identity(pred, "id_number"),
		Country:        x.country(pred.Get("country")),
		Gender:         x.identity(pred, "gender"),
		MRZ:            x.identity(pred, "mrz1"),
		ImageID:        []IdentityField{},
		ImageSignature: []IdentityField{},
	}
	if x.err != nil {
		return IdentityRecord{}, x.err
	}
	return rec, nil
}

// country 按 alpha-3 代码解析国家. 未命中时返回空的默认记录而不是 nil.
func (x *extractor) country(node fields.Tree) country.Record {
	code := node.Get("value").String()
	if code == nil {
		return country.Default()
	}
	rec, ok := country.Lookup(country.Alpha3, *code)
	if !ok {
		return country.Default()
	}
	return rec.WithConfidence(x.number(node.Get("confidence"), "country.confidence"))
}
