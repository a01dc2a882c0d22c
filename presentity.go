package stun

// Presentity is the per-message-type validity status of an attribute.
type Presentity byte

const (
	// NotApplicable means the attribute may never appear in this message type.
	NotApplicable Presentity = iota
	// Conditional means presence depends on other aspects of the message.
	Conditional
	// OptionalAttr means the attribute may or may not be present.
	OptionalAttr
	// MandatoryAttr means the attribute must be present.
	MandatoryAttr
)

// msgKind indexes the 14 message/method combinations the presentity table
// is keyed on, matching Message.java's *_PRESENTITY_INDEX constants.
type msgKind byte

const (
	kindBindingRequest msgKind = iota
	kindBindingResponse
	kindBindingErrorResponse
	kindSharedSecretRequest
	kindSharedSecretResponse
	kindSharedSecretErrorResponse
	kindAllocateRequest
	kindAllocateResponse
	kindRefreshRequest
	kindRefreshResponse
	kindChannelBindRequest
	kindChannelBindResponse
	kindSendIndication
	kindDataIndication
	numMsgKinds
)

// attrIndex indexes every attribute row of the presentity table, in the
// same order as Message.java's *_PRESENTITY_INDEX constants, plus the ICE
// rows appended at the end.
type attrIndex byte

const (
	idxMappedAddress attrIndex = iota
	idxResponseAddress
	idxChangeRequest
	idxSourceAddress
	idxChangedAddress
	idxUsername
	idxPassword
	idxMessageIntegrity
	idxErrorCode
	idxUnknownAttributes
	idxReflectedFrom
	idxXORMappedAddress
	idxXOROnly
	idxSoftware
	idxUnknownOptional
	idxAlternateServer
	idxRealm
	idxNonce
	idxFingerprint
	idxChannelNumber
	idxLifetime
	idxXORPeerAddress
	idxData
	idxXORRelayedAddress
	idxEvenPort
	idxRequestedTransport
	idxDontFragment
	idxReservationToken
	idxPriority
	idxICEControlling
	idxICEControlled
	idxUseCandidate
	numAttrIndices
)

// presentityTable is the full 32-row x 14-column matrix from spec.md §6 /
// Message.java's attributePresentities, reproduced verbatim. Rows are
// attrIndex order; columns are msgKind order.
//
//nolint:gofmt
var presentityTable = [numAttrIndices][numMsgKinds]Presentity{
	//                        BindReq        BindResp       BindErr        SSReq          SSResp         SSErr          AllocReq       AllocResp      RefreshReq     RefreshResp    ChBindReq      ChBindResp     SendInd        DataInd
	idxMappedAddress:      {NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxResponseAddress:    {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxChangeRequest:      {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxSourceAddress:      {NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxChangedAddress:     {NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxUsername:           {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, OptionalAttr, NotApplicable, OptionalAttr, NotApplicable, OptionalAttr, NotApplicable, NotApplicable, NotApplicable},
	idxPassword:           {NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxMessageIntegrity:   {OptionalAttr, OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable},
	idxErrorCode:          {NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, MandatoryAttr, NotApplicable, MandatoryAttr, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable},
	idxUnknownAttributes:  {NotApplicable, NotApplicable, Conditional, NotApplicable, NotApplicable, Conditional, NotApplicable, Conditional, NotApplicable, Conditional, NotApplicable, Conditional, NotApplicable, NotApplicable},
	idxReflectedFrom:      {NotApplicable, Conditional, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxXORMappedAddress:   {NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxXOROnly:            {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxSoftware:           {NotApplicable, OptionalAttr, OptionalAttr, NotApplicable, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable},
	idxUnknownOptional:    {OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable},
	idxAlternateServer:    {OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxRealm:              {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable},
	idxNonce:              {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable},
	idxFingerprint:        {OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable},
	idxChannelNumber:      {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable},
	idxLifetime:           {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxXORPeerAddress:     {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, MandatoryAttr, MandatoryAttr},
	idxData:               {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, MandatoryAttr},
	idxXORRelayedAddress:  {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxEvenPort:           {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxRequestedTransport: {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, MandatoryAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxDontFragment:       {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, NotApplicable},
	idxReservationToken:   {NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, OptionalAttr, OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxPriority:           {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxICEControlling:     {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxICEControlled:      {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
	idxUseCandidate:       {OptionalAttr, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable, NotApplicable},
}

// attrTypeToIndex maps an AttrType to its presentity table row. Types with
// no row (comprehension-optional attributes not named in the original
// table) fall back to idxUnknownOptional, same as Message.java's default
// case.
var attrTypeToIndex = map[AttrType]attrIndex{
	AttrMappedAddress:      idxMappedAddress,
	AttrResponseAddress:    idxResponseAddress,
	AttrChangeRequest:      idxChangeRequest,
	AttrSourceAddress:      idxSourceAddress,
	AttrChangedAddress:     idxChangedAddress,
	AttrUsername:           idxUsername,
	AttrPassword:           idxPassword,
	AttrMessageIntegrity:   idxMessageIntegrity,
	AttrErrorCode:          idxErrorCode,
	AttrUnknownAttrs:       idxUnknownAttributes,
	AttrReflectedFrom:      idxReflectedFrom,
	AttrXORMappedAddress:   idxXORMappedAddress,
	AttrXOROnly:            idxXOROnly,
	AttrSoftware:           idxSoftware,
	AttrAlternateServer:    idxAlternateServer,
	AttrRealm:              idxRealm,
	AttrNonce:              idxNonce,
	AttrFingerprint:        idxFingerprint,
	AttrChannelNumber:      idxChannelNumber,
	AttrLifetime:           idxLifetime,
	AttrXORPeerAddress:     idxXORPeerAddress,
	AttrData:               idxData,
	AttrXORRelayedAddress:  idxXORRelayedAddress,
	AttrEvenPort:           idxEvenPort,
	AttrRequestedTransport: idxRequestedTransport,
	AttrDontFragment:       idxDontFragment,
	AttrReservationToken:   idxReservationToken,
	AttrPriority:           idxPriority,
	AttrICEControlling:     idxICEControlling,
	AttrICEControlled:      idxICEControlled,
	AttrUseCandidate:       idxUseCandidate,
}

// msgKindOf maps a MessageType to its presentity table column, and reports
// whether the type has one. SharedSecret methods have no Go constant, so
// their columns are never returned; Allocate, Refresh and ChannelBind error
// responses, CreatePermission, and any class not listed below report false.
func msgKindOf(t MessageType) (msgKind, bool) {
	switch t.Method {
	case MethodBinding:
		switch t.Class {
		case ClassRequest:
			return kindBindingRequest, true
		case ClassSuccessResponse:
			return kindBindingResponse, true
		case ClassErrorResponse:
			return kindBindingErrorResponse, true
		}
	case MethodAllocate:
		switch t.Class {
		case ClassRequest:
			return kindAllocateRequest, true
		case ClassSuccessResponse:
			return kindAllocateResponse, true
		}
	case MethodRefresh:
		switch t.Class {
		case ClassRequest:
			return kindRefreshRequest, true
		case ClassSuccessResponse:
			return kindRefreshResponse, true
		}
	case MethodChannelBind:
		switch t.Class {
		case ClassRequest:
			return kindChannelBindRequest, true
		case ClassSuccessResponse:
			return kindChannelBindResponse, true
		}
	case MethodSend:
		if t.Class == ClassIndication {
			return kindSendIndication, true
		}
	case MethodData:
		if t.Class == ClassIndication {
			return kindDataIndication, true
		}
	}
	return 0, false
}

// presentityOf returns the presentity of attribute type t for message type
// mt. Message kinds the table doesn't cover are OptionalAttr; attribute
// types without a row of their own use the idxUnknownOptional row.
func presentityOf(t AttrType, mt MessageType) Presentity {
	kind, ok := msgKindOf(mt)
	if !ok {
		return OptionalAttr
	}
	idx, ok := attrTypeToIndex[t]
	if !ok {
		idx = idxUnknownOptional
	}
	return presentityTable[idx][kind]
}
