package cloudlib

// defaultNodesetTemplate is the minimal footprint nodeset uploaded when
// no template file is configured. The model name is substituted with the
// per-record document name before upload.
const defaultNodesetTemplate = `<?xml version="1.0" encoding="utf-8"?>
<UANodeSet xmlns="http://opcfoundation.org/UA/2011/03/UANodeSet.xsd">
  <Models>
    <Model ModelUri="http://opcfoundation.org/UA/CarbonFootprintAAS/" Version="1.0.0" />
  </Models>
  <UAObject NodeId="ns=1;i=1" BrowseName="1:CarbonFootprintAAS">
    <DisplayName>CarbonFootprintAAS</DisplayName>
  </UAObject>
</UANodeSet>
`
