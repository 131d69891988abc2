package entity

type TxKind string

const (
	TxKindTransfer TxKind = "transfer"
	TxKindPayment  TxKind = "payment"
)

// Form identifies one of the two submission drafts.
type Form string

const (
	FormTransfer Form = "transfer"
	FormPayment  Form = "payment"
)

// Field names a draft field. The string value is the wire name.
type Field string

const (
	FieldFrom       Field = "from"
	FieldTo         Field = "to"
	FieldMerchantID Field = "merchantId"
	FieldAmount     Field = "amount"
	FieldCurrency   Field = "currency"
	FieldTxID       Field = "txId"
	FieldChannel    Field = "channel"
)
