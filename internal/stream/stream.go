package stream

type CommonResp struct {
	Code    int         `json:"code"`
	Message string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
}

type VerifyOfRequest struct {
	Event           string   `json:"event" binding:"required"`
	ContractAddress string   `json:"contract_address" binding:"required"`
	Receipt         string   `json:"receipt" binding:"required"`
	Commitments     []string `json:"commitments" binding:"required"`
	Strict          *bool    `json:"strict,omitempty"`
}

type VerifyOfResponse struct {
	Id       string `json:"id"`
	Verified bool   `json:"verified"`
	Reason   string `json:"reason"`
}

type EventOfResponse struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Commitments int    `json:"commitments"`
	Signature   string `json:"signature"`
}
