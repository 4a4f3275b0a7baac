package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMethodResponseString(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
		<methodResponse><params><param>
		<value><string>713</string></value>
		</param></params></methodResponse>`)

	value, fault, err := decodeMethodResponse(data)

	require.NoError(t, err)
	require.Nil(t, fault)
	assert.Equal(t, "713", value)
}

func TestDecodeMethodResponseBoolean(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
		<methodResponse><params><param>
		<value><boolean>1</boolean></value>
		</param></params></methodResponse>`)

	value, fault, err := decodeMethodResponse(data)

	require.NoError(t, err)
	require.Nil(t, fault)
	assert.Equal(t, true, value)
}

func TestDecodeMethodResponseUntypedValue(t *testing.T) {
	data := []byte(`<methodResponse><params><param><value>99</value></param></params></methodResponse>`)

	value, fault, err := decodeMethodResponse(data)

	require.NoError(t, err)
	require.Nil(t, fault)
	assert.Equal(t, "99", value)
}

func TestDecodeMethodResponseFault(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
		<methodResponse><fault><value><struct>
		<member><name>faultCode</name><value><int>403</int></value></member>
		<member><name>faultString</name><value><string>Incorrect username or password.</string></value></member>
		</struct></value></fault></methodResponse>`)

	value, fault, err := decodeMethodResponse(data)

	require.NoError(t, err)
	require.NotNil(t, fault)
	assert.Nil(t, value)
	assert.Equal(t, 403, fault.code)
	assert.Equal(t, "Incorrect username or password.", fault.message)
}

func TestDecodeMethodResponseGarbage(t *testing.T) {
	_, _, err := decodeMethodResponse([]byte(`<methodResponse><params></params></methodResponse>`))

	assert.Error(t, err)
}
